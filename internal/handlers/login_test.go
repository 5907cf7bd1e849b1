package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		reqBody       models.LoginRequest
		mockSetup     func(m *MockLoginer)
		expectedCode  int
		expectedError string
		rawBody       string
	}{
		{
			name: "success",
			reqBody: models.LoginRequest{
				Email:    "alice@example.com",
				Password: "secret123",
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "secret123").
					Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, "access", "refresh", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "invalid credentials",
			reqBody: models.LoginRequest{
				Email:    "alice@example.com",
				Password: "wrongpass",
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "wrongpass").
					Return(nil, "", "", services.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name: "internal server error",
			reqBody: models.LoginRequest{
				Email:    "alice@example.com",
				Password: "secret123",
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "alice@example.com", "secret123").
					Return(nil, "", "", errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "missing email",
			reqBody: models.LoginRequest{
				Password: "secret123",
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Validation failed",
		},
		{
			name: "missing password",
			reqBody: models.LoginRequest{
				Email: "alice@example.com",
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Validation failed",
		},
		{
			name:          "invalid json",
			rawBody:       "{invalid json}",
			expectedCode:  http.StatusBadRequest,
			expectedError: "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyBytes))
			}

			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp models.ErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}

			var resp models.AuthResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Login successful", resp.Message)
			assert.Equal(t, "alice", resp.User.Username)
			assert.Equal(t, "access", resp.Token)
			assert.Equal(t, "refresh", resp.RefreshToken)
		})
	}
}
