package elevenlabs

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func signedURLWithExpiry(t *testing.T, exp time.Time) string {
	t.Helper()
	return "wss://api.elevenlabs.io/v1/convai/conversation?token=" + signedToken(t, exp)
}

func TestSignedURLExpiry(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	got, err := SignedURLExpiry(signedURLWithExpiry(t, exp))
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "got %v, want %v", got, exp)
}

func TestSignedURLExpiryErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no token", "wss://api.elevenlabs.io/v1/convai/conversation"},
		{"garbage token", "wss://api.elevenlabs.io/v1/convai/conversation?token=not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SignedURLExpiry(tt.url)
			require.Error(t, err)
			assert.True(t, IsCode(err, ErrCodeWebSocket), "got %v", err)
		})
	}
}

func TestSignedURLExpiryNoExpiryClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "abc"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = SignedURLExpiry("wss://example.com/ws?token=" + signed)
	require.Error(t, err)
}

func TestIsSignedURLExpired(t *testing.T) {
	fresh := signedURLWithExpiry(t, time.Now().Add(time.Hour))
	stale := signedURLWithExpiry(t, time.Now().Add(-time.Hour))

	assert.False(t, IsSignedURLExpired(fresh, 0))
	assert.True(t, IsSignedURLExpired(stale, 0))

	// Leeway counts a soon-to-expire URL as already expired.
	soon := signedURLWithExpiry(t, time.Now().Add(30*time.Second))
	assert.False(t, IsSignedURLExpired(soon, 0))
	assert.True(t, IsSignedURLExpired(soon, time.Minute))

	// Undecodable URLs count as expired.
	assert.True(t, IsSignedURLExpired("wss://example.com/ws", 0))
}
