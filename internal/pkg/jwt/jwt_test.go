package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Hour)

	tok, err := svc.GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidate_WrongSecretOrExpired(t *testing.T) {
	tok, err := New("secret", time.Hour).GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	_, err = New("other", time.Hour).ValidateToken(tok)
	assert.Error(t, err)

	expired, err := New("secret", -time.Minute).GenerateToken("admin-1", "admin")
	require.NoError(t, err)
	_, err = New("secret", time.Hour).ValidateToken(expired)
	assert.Error(t, err)
}
