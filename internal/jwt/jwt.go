package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim.
const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature,
	// expiry, or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT issues and validates signed access and refresh tokens bound to a
// numeric user id. Tokens are verifiable without a database round trip.
type JWT struct {
	secretKey  string
	accessExp  time.Duration
	refreshExp time.Duration
}

// Opt configures a JWT instance.
type Opt func(*JWT)

// WithSecretKey sets the HMAC signing secret.
func WithSecretKey(secret string) Opt {
	return func(j *JWT) { j.secretKey = secret }
}

// WithAccessExpiration sets the access token lifetime.
func WithAccessExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.accessExp = d }
}

// WithRefreshExpiration sets the refresh token lifetime.
func WithRefreshExpiration(d time.Duration) Opt {
	return func(j *JWT) { j.refreshExp = d }
}

// New creates a JWT instance. Lifetimes default to 15 minutes for access
// tokens and 7 days for refresh tokens until overridden by options.
func New(opts ...Opt) *JWT {
	j := &JWT{
		accessExp:  15 * time.Minute,
		refreshExp: 7 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a short-lived access token for the given user id.
func (j *JWT) Generate(ctx context.Context, userID int64) (string, error) {
	return j.generate(userID, typeAccess, j.accessExp)
}

// GenerateRefresh creates a long-lived refresh token for the given user id.
func (j *JWT) GenerateRefresh(ctx context.Context, userID int64) (string, error) {
	return j.generate(userID, typeRefresh, j.refreshExp)
}

func (j *JWT) generate(userID int64, tokenType string, exp time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": tokenType,
		"exp":        now.Add(exp).Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Validate checks that the token string is a valid access token.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetUserID(ctx, tokenString)
	return err
}

// GetUserID parses an access token and returns the user id it is bound to.
func (j *JWT) GetUserID(ctx context.Context, tokenString string) (int64, error) {
	return j.parse(tokenString, typeAccess)
}

// GetRefreshUserID parses a refresh token and returns the user id it is
// bound to. Access tokens are rejected.
func (j *JWT) GetRefreshUserID(ctx context.Context, tokenString string) (int64, error) {
	return j.parse(tokenString, typeRefresh)
}

func (j *JWT) parse(tokenString, wantType string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	tokenType, _ := claims["token_type"].(string)
	if tokenType != wantType {
		return 0, ErrInvalidToken
	}

	// Numeric JSON claims decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return int64(userID), nil
}

// GetTokenFromRequest extracts the bearer token from the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
