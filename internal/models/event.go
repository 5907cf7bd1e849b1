package models

// Auth event types published to the event stream.
const (
	EventUserRegistered         = "user.registered"
	EventUserLoggedIn           = "user.logged_in"
	EventPasswordResetRequested = "password.reset_requested"
)

// AuthEvent represents an authentication event published to Kafka.
type AuthEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Type      string `json:"type"`      // Type is one of the Event* constants.
	UserID    int64  `json:"user_id"`   // UserID is the user the event concerns.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) of the event.
}
