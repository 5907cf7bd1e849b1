package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialgram/socialgram-api/internal/logger"
)

// ResetTokenRepository stores password-reset tokens in Redis with a TTL.
// A token maps to the user id it was issued for and disappears on expiry.
type ResetTokenRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewResetTokenRepository creates a new repository with the given token TTL.
func NewResetTokenRepository(client *redis.Client, expiration time.Duration) *ResetTokenRepository {
	return &ResetTokenRepository{
		client: client,
		exp:    expiration,
	}
}

func resetTokenKey(token string) string {
	return "password_reset:" + token
}

// Save stores a reset token for the given user.
func (r *ResetTokenRepository) Save(ctx context.Context, token string, userID int64) error {
	key := resetTokenKey(token)
	err := r.client.Set(ctx, key, strconv.FormatInt(userID, 10), r.exp).Err()

	logger.Log.Infow("reset token saved",
		"user_id", userID,
		"ttl", r.exp,
		"error", err,
	)

	return err
}

// GetUserID resolves a reset token to the user id it was issued for.
// An unknown or expired token is an error.
func (r *ResetTokenRepository) GetUserID(ctx context.Context, token string) (int64, error) {
	key := resetTokenKey(token)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("reset token not found or expired")
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}

	return userID, nil
}
