package elevenlabs

import (
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SignedURLExpiry extracts the expiry time from the token embedded in a
// signed realtime URL. The token is inspected without signature verification;
// only the service can verify it, the client only needs to know when to
// request a fresh URL.
func SignedURLExpiry(signedURL string) (time.Time, error) {
	u, err := url.Parse(signedURL)
	if err != nil {
		return time.Time{}, newWebSocketError("invalid signed URL: " + err.Error())
	}
	token := u.Query().Get("token")
	if token == "" {
		return time.Time{}, newWebSocketError("signed URL carries no token")
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, newWebSocketError("cannot decode signed URL token: " + err.Error())
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, newWebSocketError("signed URL token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}

// IsSignedURLExpired reports whether the signed URL's token is expired, or
// will be within leeway. URLs whose token cannot be decoded count as
// expired.
func IsSignedURLExpired(signedURL string, leeway time.Duration) bool {
	exp, err := SignedURLExpiry(signedURL)
	if err != nil {
		return true
	}
	return !time.Now().Add(leeway).Before(exp)
}
