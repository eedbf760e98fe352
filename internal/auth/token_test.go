package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadetan/expense-tracking/internal/auth"
	"github.com/hadetan/expense-tracking/internal/user"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens("secret", "expense-tracking", time.Hour)
	u := &user.User{ID: uuid.New(), IsAdmin: true}

	signed, expiresAt, err := tokens.Issue(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestTokens_Parse_Rejects(t *testing.T) {
	u := &user.User{ID: uuid.New()}

	valid, _, err := auth.NewTokens("secret", "expense-tracking", time.Hour).Issue(u)
	require.NoError(t, err)

	expired, _, err := auth.NewTokens("secret", "expense-tracking", -time.Hour).Issue(u)
	require.NoError(t, err)

	tests := []struct {
		name    string
		tokens  *auth.Tokens
		token   string
		wantErr error
	}{
		{name: "Expired", tokens: auth.NewTokens("secret", "expense-tracking", time.Hour), token: expired, wantErr: auth.ErrTokenExpired},
		{name: "WrongSecret", tokens: auth.NewTokens("other", "expense-tracking", time.Hour), token: valid, wantErr: auth.ErrInvalidToken},
		{name: "WrongIssuer", tokens: auth.NewTokens("secret", "someone-else", time.Hour), token: valid, wantErr: auth.ErrInvalidToken},
		{name: "Garbage", tokens: auth.NewTokens("secret", "expense-tracking", time.Hour), token: "not.a.token", wantErr: auth.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.tokens.Parse(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}
