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

func TestRefreshTokenHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		reqBody       models.RefreshTokenRequest
		mockSetup     func(m *MockRefresher)
		expectedCode  int
		expectedError string
		rawBody       string
	}{
		{
			name:    "success",
			reqBody: models.RefreshTokenRequest{RefreshToken: "oldrefresh"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "oldrefresh").
					Return("newaccess", "newrefresh", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "invalid refresh token",
			reqBody: models.RefreshTokenRequest{RefreshToken: "expired"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "expired").
					Return("", "", services.ErrInvalidToken)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid or expired refresh token",
		},
		{
			name:          "missing refresh token",
			reqBody:       models.RefreshTokenRequest{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Refresh token is required",
		},
		{
			name:    "internal server error",
			reqBody: models.RefreshTokenRequest{RefreshToken: "oldrefresh"},
			mockSetup: func(m *MockRefresher) {
				m.EXPECT().
					Refresh(gomock.Any(), "oldrefresh").
					Return("", "", errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
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
			mockSvc := NewMockRefresher(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRefreshTokenHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", bytes.NewBuffer(bodyBytes))
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

			var resp models.TokenPairResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "newaccess", resp.Token)
			assert.Equal(t, "newrefresh", resp.RefreshToken)
		})
	}
}
