package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/socialgram/socialgram-api/internal/logger"
	"github.com/socialgram/socialgram-api/internal/middlewares"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/services"
)

// ProfileGetter defines the interface that the auth service must implement.
type ProfileGetter interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// NewMeHandler returns an HTTP handler that resolves the authenticated
// user's public profile. It relies on the auth middleware having placed the
// user id into the request context.
// @Summary Current user
// @Description Returns the public fields of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse "Authenticated user"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} models.ErrorResponse "User no longer exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /me [get]
func NewMeHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middlewares.GetUserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		user, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusNotFound, models.ErrorResponse{
					Error: "User not found",
				})
			default:
				logger.Log.Errorw("get profile failed", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.ProfileResponse{User: user})
	}
}
