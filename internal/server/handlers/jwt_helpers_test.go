package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	cfg := JWTConfig{
		Secret:         []byte("secret"),
		AccessTokenTTL: 10 * time.Minute,
	}

	token, expiresIn, err := GenerateAccessToken(cfg, "u-1", "author")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(600), expiresIn)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "author", claims.Username)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestValidateAccessToken_Errors(t *testing.T) {
	cfg := JWTConfig{Secret: []byte("secret"), AccessTokenTTL: time.Minute}

	expired, _, err := GenerateAccessToken(JWTConfig{Secret: cfg.Secret, AccessTokenTTL: -time.Minute}, "u", "n")
	require.NoError(t, err)

	foreign, _, err := GenerateAccessToken(JWTConfig{Issuer: "other", Secret: cfg.Secret, AccessTokenTTL: time.Minute}, "u", "n")
	require.NoError(t, err)

	wrongKey, _, err := GenerateAccessToken(JWTConfig{Secret: []byte("nope"), AccessTokenTTL: time.Minute}, "u", "n")
	require.NoError(t, err)

	// alg=none
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoidSJ9."

	for name, token := range map[string]string{
		"expired":        expired,
		"foreign issuer": foreign,
		"wrong key":      wrongKey,
		"unsigned":       unsigned,
		"garbage":        "abc",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateAccessToken(cfg, token)
			assert.Error(t, err)
		})
	}
}
