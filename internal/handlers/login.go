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

// Loginer defines the interface that the auth service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates a user by email and password and returns an access and a refresh token. A wrong password and an unknown email produce the same response.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:   "Validation failed",
				Details: "request body must be valid JSON",
			})
			return
		}

		if verr := validation.Struct(&req); verr != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
				Error:   "Validation failed",
				Details: verr.Error(),
			})
			return
		}

		user, token, refreshToken, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Error: "Invalid credentials",
				})
			default:
				logger.Log.Errorw("login failed", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.AuthResponse{
			Message:      "Login successful",
			User:         user,
			Token:        token,
			RefreshToken: refreshToken,
		})
	}
}
