package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/socialgram/socialgram-api/internal/logger"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/validation"
)

// PasswordForgetter defines the interface that the auth service must implement.
type PasswordForgetter interface {
	ForgotPassword(ctx context.Context, email string) error
}

// forgotPasswordMessage is returned whether or not the email matches an
// account, so the endpoint cannot be used to probe for registered emails.
const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// NewForgotPasswordHandler returns an HTTP handler for password reset requests.
// @Summary Request a password reset
// @Description Notes a password reset request. The response is identical whether or not the email belongs to an account.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgotPasswordRequest body models.ForgotPasswordRequest true "Password reset request"
// @Success 200 {object} models.MessageResponse "Generic confirmation"
// @Failure 400 {object} models.ErrorResponse "Email is missing"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /forgot-password [post]
func NewForgotPasswordHandler(svc PasswordForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ForgotPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:   "Validation failed",
				Details: "request body must be valid JSON",
			})
			return
		}

		if verr := validation.Struct(&req); verr != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "Email is required",
			})
			return
		}

		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			logger.Log.Errorw("forgot password failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		writeJSON(w, http.StatusOK, models.MessageResponse{
			Message: forgotPasswordMessage,
		})
	}
}
