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

// Registerer defines the interface that the auth service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password, fullName string) (*models.User, string, string, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique username and email. The password is hashed before storing and both an access and a refresh token are issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.AuthResponse "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Validation failed"
// @Failure 409 {object} models.ErrorResponse "User already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest

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

		user, token, refreshToken, err := svc.Register(r.Context(), req.Username, req.Email, req.Password, req.FullName)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusConflict, models.ErrorResponse{
					Error: "User already exists with this email or username",
				})
			default:
				logger.Log.Errorw("register failed", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.AuthResponse{
			Message:      "User registered successfully",
			User:         user,
			Token:        token,
			RefreshToken: refreshToken,
		})
	}
}
