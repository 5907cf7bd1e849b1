package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithAccessExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.NoError(t, err)

	userID, err := j.GetUserID(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWT_RefreshToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithRefreshExpiration(time.Hour))
	ctx := context.Background()

	refresh, err := j.GenerateRefresh(ctx, 7)
	assert.NoError(t, err)
	assert.NotEmpty(t, refresh)

	userID, err := j.GetRefreshUserID(ctx, refresh)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	// A refresh token is not an access token.
	err = j.Validate(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// And an access token is not a refresh token.
	access, err := j.Generate(ctx, 7)
	assert.NoError(t, err)
	_, err = j.GetRefreshUserID(ctx, access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithAccessExpiration(-time.Minute)) // already expired
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	err = j.Validate(ctx, token)
	assert.Error(t, err)

	_, err = j.GetUserID(ctx, token)
	assert.Error(t, err)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	err := j.Validate(ctx, "invalid.token.string")
	assert.Error(t, err)

	// Token signed with a different secret
	other := New(WithSecretKey("other-secret"))
	token, err := other.Generate(ctx, 1)
	assert.NoError(t, err)

	err = j.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer sometoken", want: "sometoken"},
		{name: "case insensitive scheme", header: "bearer sometoken", want: "sometoken"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic sometoken", wantErr: true},
		{name: "malformed header", header: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
