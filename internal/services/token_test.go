package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/taskgo/internal/models"
)

func newTestTokenManager(ttl time.Duration) *TokenManager {
	return NewTokenManager("taskgo-test", "test-signing-key", ttl)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := newTestTokenManager(time.Hour)
	user := &models.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@x.com",
	}

	token, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "alice@x.com", identity.Email)
}

func TestTokenManager_Verify_Invalid(t *testing.T) {
	m := newTestTokenManager(time.Hour)
	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@x.com"}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed token",
			token: "header.payload.signature",
		},
		{
			name: "wrong signing key",
			token: func() string {
				other := NewTokenManager("taskgo-test", "different-key", time.Hour)
				token, _, err := other.Issue(user)
				require.NoError(t, err)
				return token
			}(),
		},
		{
			name: "wrong issuer",
			token: func() string {
				other := NewTokenManager("someone-else", "test-signing-key", time.Hour)
				token, _, err := other.Issue(user)
				require.NoError(t, err)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := m.Verify(tt.token)
			require.Error(t, err)
			assert.Nil(t, identity)
		})
	}
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	m := newTestTokenManager(-time.Hour)
	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@x.com"}

	token, _, err := m.Issue(user)
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}
