package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/socialgram/socialgram-api/internal/logger"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/validation"
)

// EmailVerifier defines the interface that the auth service must implement.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, token string) error
}

// NewVerifyEmailHandler returns an HTTP handler for email verification.
// Verification itself is a placeholder: the token is required and
// acknowledged, but no account state changes yet.
// @Summary Verify an email address
// @Description Accepts an email verification token. Verification is not implemented yet.
// @Tags auth
// @Accept json
// @Produce json
// @Param verifyEmailRequest body models.VerifyEmailRequest true "Email verification request"
// @Success 200 {object} models.MessageResponse "Acknowledgement"
// @Failure 400 {object} models.ErrorResponse "Token is missing"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /verify-email [post]
func NewVerifyEmailHandler(svc EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.VerifyEmailRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:   "Validation failed",
				Details: "request body must be valid JSON",
			})
			return
		}

		if verr := validation.Struct(&req); verr != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "Verification token is required",
			})
			return
		}

		if err := svc.VerifyEmail(r.Context(), req.Token); err != nil {
			logger.Log.Errorw("verify email failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{
			Message: "Email verification functionality will be implemented",
		})
	}
}
