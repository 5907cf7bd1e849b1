package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/socialgram/socialgram-api/internal/logger"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/services"
	"github.com/socialgram/socialgram-api/internal/validation"
)

// Refresher defines the interface that the auth service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// NewRefreshTokenHandler returns an HTTP handler that exchanges a refresh
// token for a fresh access/refresh token pair.
// @Summary Refresh the token pair
// @Description Exchanges a valid refresh token for a new access and refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshTokenRequest body models.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} models.TokenPairResponse "New token pair"
// @Failure 400 {object} models.ErrorResponse "Refresh token is missing"
// @Failure 401 {object} models.ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /refresh-token [post]
func NewRefreshTokenHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RefreshTokenRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:   "Validation failed",
				Details: "request body must be valid JSON",
			})
			return
		}

		if verr := validation.Struct(&req); verr != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error: "Refresh token is required",
			})
			return
		}

		token, refreshToken, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidToken):
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Error: "Invalid or expired refresh token",
				})
			default:
				logger.Log.Errorw("token refresh failed", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.TokenPairResponse{
			Token:        token,
			RefreshToken: refreshToken,
		})
	}
}
