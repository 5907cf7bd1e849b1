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
)

func TestForgotPasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name            string
		reqBody         models.ForgotPasswordRequest
		mockSetup       func(m *MockPasswordForgetter)
		expectedCode    int
		expectedError   string
		expectedMessage string
		rawBody         string
	}{
		{
			name:    "known email",
			reqBody: models.ForgotPasswordRequest{Email: "alice@example.com"},
			mockSetup: func(m *MockPasswordForgetter) {
				m.EXPECT().
					ForgotPassword(gomock.Any(), "alice@example.com").
					Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: forgotPasswordMessage,
		},
		{
			name:    "unknown email gets the same response",
			reqBody: models.ForgotPasswordRequest{Email: "nobody@example.com"},
			mockSetup: func(m *MockPasswordForgetter) {
				m.EXPECT().
					ForgotPassword(gomock.Any(), "nobody@example.com").
					Return(nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: forgotPasswordMessage,
		},
		{
			name:          "missing email",
			reqBody:       models.ForgotPasswordRequest{},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Email is required",
		},
		{
			name:    "internal server error",
			reqBody: models.ForgotPasswordRequest{Email: "alice@example.com"},
			mockSetup: func(m *MockPasswordForgetter) {
				m.EXPECT().
					ForgotPassword(gomock.Any(), "alice@example.com").
					Return(errors.New("database failure"))
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
			mockSvc := NewMockPasswordForgetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewForgotPasswordHandler(mockSvc)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewBufferString(tt.rawBody))
			} else {
				bodyBytes, _ := json.Marshal(tt.reqBody)
				req = httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewBuffer(bodyBytes))
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

			var resp models.MessageResponse
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}
