package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "inkwell-secret-change-me"

var (
	secret     = []byte(defaultSecret)
	defaultTTL = 7 * 24 * time.Hour
)

// SetSecret configures the signing secret (call on startup).
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

// SetTTL configures the token lifetime (call on startup).
func SetTTL(ttl time.Duration) {
	if ttl > 0 {
		defaultTTL = ttl
	}
}

// TTL returns the configured token lifetime.
func TTL() time.Duration { return defaultTTL }

// Claims is the signed session payload. The token is the session: there is
// no server-side registry, and a minted token stays valid until expiry.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwtlib.RegisteredClaims
}

// Mint signs a session token for the given identity.
func Mint(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(defaultTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify validates a token string and returns its claims. Any decode
// error, signature mismatch, or elapsed expiry yields an error; a partially
// trusted identity is never returned.
func Verify(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
