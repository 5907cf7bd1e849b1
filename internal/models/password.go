package models

// ForgotPasswordRequest represents the JSON body for a password reset request.
// Only presence of the email is validated; the response never discloses
// whether an account exists.
// swagger:model ForgotPasswordRequest
type ForgotPasswordRequest struct {
	// Email
	// required: true
	// example: alice@example.com
	Email string `json:"email" validate:"required"`
}

// VerifyEmailRequest represents the JSON body for email verification
// swagger:model VerifyEmailRequest
type VerifyEmailRequest struct {
	// Verification token
	// required: true
	Token string `json:"token" validate:"required"`
}

// MessageResponse represents a generic success message
// swagger:model MessageResponse
type MessageResponse struct {
	// Human-readable result
	// example: If an account with that email exists, a password reset link has been sent.
	Message string `json:"message"`
}
