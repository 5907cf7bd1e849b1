package models

// RefreshTokenRequest represents the JSON body for exchanging a refresh token
// swagger:model RefreshTokenRequest
type RefreshTokenRequest struct {
	// Refresh token issued at registration or login
	// required: true
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPairResponse represents a freshly issued token pair
// swagger:model TokenPairResponse
type TokenPairResponse struct {
	// Short-lived access token
	Token string `json:"token"`

	// Long-lived refresh token
	RefreshToken string `json:"refreshToken"`
}
