package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getevo/evo/v2/lib/log"
	"github.com/getevo/evo/v2/lib/settings"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stafflink/portal-backend/apps/redis"
)

// JWTSecret is the provider's shared signing secret. Access tokens are issued
// by the provider and verified locally; this service never issues tokens.
var JWTSecret []byte

// InitializeJWTSecret loads the provider JWT secret during app registration.
func InitializeJWTSecret() {
	secret := settings.Get("PROVIDER.JWT_SECRET").String()
	if secret == "" {
		secret = os.Getenv("PROVIDER_JWT_SECRET")
	}
	if secret == "" {
		log.Warning("PROVIDER.JWT_SECRET not set; token verification will reject all requests")
	}
	JWTSecret = []byte(secret)
}

// Claims is the portion of the provider-issued access token the portal reads.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// VerifyAccessToken validates a provider-issued access token and returns its
// claims. Tokens revoked through signout are rejected.
func VerifyAccessToken(tokenString string) (*Claims, error) {
	if len(JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT secret is not initialized")
	}

	if redis.IsRevoked(tokenString) {
		return nil, fmt.Errorf("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return claims, nil
}

// TokenTTL returns how long the token remains valid, for revocation entries.
func (c *Claims) TokenTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}

// BearerToken extracts the bearer token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
