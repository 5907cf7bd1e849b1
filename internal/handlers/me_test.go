package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/socialgram/socialgram-api/internal/middlewares"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/services"
)

// stubTokener resolves every request to a fixed user id, so the handler can
// be exercised behind the real auth middleware.
type stubTokener struct {
	userID int64
}

func (s *stubTokener) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	return "stubtoken", nil
}

func (s *stubTokener) GetUserID(ctx context.Context, tokenString string) (int64, error) {
	return s.userID, nil
}

func TestMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		userID        int64
		mockSetup     func(m *MockProfileGetter)
		expectedCode  int
		expectedError string
	}{
		{
			name:   "success",
			userID: 1,
			mockSetup: func(m *MockProfileGetter) {
				m.EXPECT().
					GetProfile(gomock.Any(), int64(1)).
					Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice Liddell"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "user deleted after token issue",
			userID: 2,
			mockSetup: func(m *MockProfileGetter) {
				m.EXPECT().
					GetProfile(gomock.Any(), int64(2)).
					Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "User not found",
		},
		{
			name:   "internal server error",
			userID: 3,
			mockSetup: func(m *MockProfileGetter) {
				m.EXPECT().
					GetProfile(gomock.Any(), int64(3)).
					Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockProfileGetter(ctrl)
			tt.mockSetup(mockSvc)

			handler := middlewares.AuthMiddleware(&stubTokener{userID: tt.userID})(NewMeHandler(mockSvc))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp models.ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp models.ProfileResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, int64(1), resp.User.ID)
			assert.Equal(t, "alice", resp.User.Username)
		})
	}
}

func TestMeHandler_NoUserInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileGetter(ctrl)

	handler := NewMeHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()

	handler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
