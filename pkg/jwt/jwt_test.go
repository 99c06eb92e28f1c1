package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateToken("ops", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, time.Hour, m.GetExpiry())
}

func TestManagerRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)

	other, err := NewManager("other", time.Hour).GenerateToken("ops", RoleAdmin)
	require.NoError(t, err)
	_, err = m.ValidateToken(other)
	assert.Error(t, err, "wrong secret")

	expired, err := NewManager("secret", -time.Minute).GenerateToken("ops", RoleAdmin)
	require.NoError(t, err)
	_, err = m.ValidateToken(expired)
	assert.Error(t, err, "expired")

	_, err = m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
