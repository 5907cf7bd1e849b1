package models

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`

	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required,min=6"`

	// Full name, defaults to the username when omitted
	// example: Alice Liddell
	FullName string `json:"fullName" validate:"omitempty,min=1,max=100"`
}

// AuthResponse represents a successful registration or login response
// swagger:model AuthResponse
type AuthResponse struct {
	// Human-readable result
	// example: User registered successfully
	Message string `json:"message"`

	// Public user fields
	User *User `json:"user"`

	// Short-lived access token
	Token string `json:"token"`

	// Long-lived refresh token
	RefreshToken string `json:"refreshToken"`
}
