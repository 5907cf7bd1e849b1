package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/socialgram/socialgram-api/internal/logger"
	"github.com/socialgram/socialgram-api/internal/models"
	"github.com/socialgram/socialgram-api/internal/repositories"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists with this email or username")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users. A missing user is
// (nil, nil), never an error.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash, fullName string) (*models.UserDB, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenGenerator issues and verifies the access/refresh token pair.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
	GenerateRefresh(ctx context.Context, userID int64) (string, error)
	GetRefreshUserID(ctx context.Context, tokenString string) (int64, error)
}

// ResetTokenWriter stores issued password-reset tokens.
type ResetTokenWriter interface {
	Save(ctx context.Context, token string, userID int64) error
}

// Mailer delivers password-reset email. Delivery is an external
// collaborator; no implementation is wired yet and a nil Mailer is skipped.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuthService handles registration, login, token refresh, and the
// password-reset and email-verification entry points.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         TokenGenerator
	resetTokens ResetTokenWriter
	mailer      Mailer
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService. mailer and kafkaWriter may be
// nil; the corresponding side effects are then skipped.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt TokenGenerator,
	resetTokens ResetTokenWriter,
	mailer Mailer,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		resetTokens: resetTokens,
		mailer:      mailer,
		kafkaWriter: kafkaWriter,
	}
}

// Register creates a new user and returns its public fields together with
// an access/refresh token pair. The existence pre-check is best effort; the
// unique constraint decides, and a lost race reports the same conflict.
func (svc *AuthService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, string, string, error) {
	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", "", err
	}

	if fullName == "" {
		fullName = username
	}

	user, err := svc.writer.Save(ctx, username, email, string(hashedPassword), fullName)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			// The pre-check raced with another insert.
			return nil, "", "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", "", err
	}

	token, refreshToken, err := svc.tokenPair(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}

	svc.publishEvent(ctx, models.EventUserRegistered, user.ID)

	return user.Public(), token, refreshToken, nil
}

// Login authenticates a user by email and password. A missing user and a
// wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", "", err
	}
	if user == nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := svc.writer.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update last login", "err", err)
		return nil, "", "", err
	}

	token, refreshToken, err := svc.tokenPair(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}

	svc.publishEvent(ctx, models.EventUserLoggedIn, user.ID)

	return user.Public(), token, refreshToken, nil
}

// ForgotPassword notes a password-reset request. Whether the email matches
// a user never changes the outcome; only a store failure during the lookup
// is an error. When a match is found a reset token is issued and handed to
// the mailer collaborator.
func (svc *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user for password reset", "err", err)
		return err
	}
	if user == nil {
		return nil
	}

	token := uuid.NewString()
	if svc.resetTokens != nil {
		if err := svc.resetTokens.Save(ctx, token, user.ID); err != nil {
			// The caller already got its generic answer shape; leaving the
			// token unissued only delays the user, so do not fail the request.
			logger.Log.Errorw("failed to store reset token", "err", err)
			return nil
		}
	}

	if svc.mailer == nil {
		logger.Log.Infow("mailer not configured, skipping reset email", "user_id", user.ID)
	} else if err := svc.mailer.SendPasswordReset(ctx, email, token); err != nil {
		logger.Log.Errorw("failed to send reset email", "err", err)
	}

	svc.publishEvent(ctx, models.EventPasswordResetRequested, user.ID)

	return nil
}

// VerifyEmail acknowledges an email-verification token.
// TODO: implement verification once the email delivery collaborator exists;
// until then the token is accepted without any state change.
func (svc *AuthService) VerifyEmail(ctx context.Context, token string) error {
	logger.Log.Infow("email verification requested, not yet implemented")
	return nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := svc.jwt.GetRefreshUserID(ctx, refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	// The user may have been deleted since the token was issued.
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user for token refresh", "err", err)
		return "", "", err
	}
	if user == nil {
		return "", "", ErrInvalidToken
	}

	return svc.tokenPair(ctx, userID)
}

// GetProfile returns the public fields of the given user.
func (svc *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user profile", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Public(), nil
}

func (svc *AuthService) tokenPair(ctx context.Context, userID int64) (string, string, error) {
	token, err := svc.jwt.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return "", "", err
	}

	refreshToken, err := svc.jwt.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", "", err
	}

	return token, refreshToken, nil
}

// publishEvent publishes an auth event to Kafka. Publishing is best effort:
// a missing writer or a broker failure never fails the request.
func (svc *AuthService) publishEvent(ctx context.Context, eventType string, userID int64) {
	if svc.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "type", eventType)
		return
	}

	event := models.AuthEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal auth event", "type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish auth event", "type", eventType, "error", err)
		return
	}

	logger.Log.Infow("auth event published", "type", eventType, "user_id", userID)
}
