package models

import (
	"database/sql"
	"time"
)

// UserDB represents a row of the users table.
type UserDB struct {
	ID              int64          `db:"id"`                // Primary key
	Username        string         `db:"username"`          // Unique username
	Email           string         `db:"email"`             // Unique email
	PasswordHash    string         `db:"password_hash"`     // bcrypt hash, never exposed
	FullName        sql.NullString `db:"full_name"`         // Display name, defaults to username
	Bio             sql.NullString `db:"bio"`               // Profile bio
	ProfileImageURL sql.NullString `db:"profile_image_url"` // Avatar URL
	IsVerified      bool           `db:"is_verified"`       // Verified badge
	IsPrivate       bool           `db:"is_private"`        // Private account flag
	FollowersCount  int            `db:"followers_count"`   // Denormalized counter
	FollowingCount  int            `db:"following_count"`   // Denormalized counter
	PostsCount      int            `db:"posts_count"`       // Denormalized counter
	LastLogin       sql.NullTime   `db:"last_login"`        // Set on successful login
	CreatedAt       time.Time      `db:"created_at"`        // Creation timestamp
	UpdatedAt       time.Time      `db:"updated_at"`        // Last update timestamp
}

// User is the public user representation returned by the API.
// The password hash is never part of it.
// swagger:model User
type User struct {
	// User ID
	// example: 1
	ID int64 `json:"id"`

	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice@example.com
	Email string `json:"email"`

	// Full name
	// example: Alice Liddell
	FullName string `json:"fullName"`

	// Creation timestamp
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse wraps the public user returned by the profile endpoint.
type ProfileResponse struct {
	User *User `json:"user"` // Authenticated user
}

// Public converts a database row into its public representation.
func (u *UserDB) Public() *User {
	fullName := u.Username
	if u.FullName.Valid {
		fullName = u.FullName.String
	}
	return &User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  fullName,
		CreatedAt: u.CreatedAt,
	}
}
