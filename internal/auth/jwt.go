package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	mu          sync.RWMutex
	jwtSecret   = []byte("development-insecure-secret-change-me")
	jwtIssuer   = "country-explorer"
	jwtAudience = "country-explorer-clients"
	tokenTTL    = 24 * time.Hour
)

var now = time.Now

// Configure sets the signing secret, issuer, audience and token lifetime.
// Empty values and a zero ttl keep the current setting.
func Configure(secret, issuer, audience string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if audience != "" {
		jwtAudience = audience
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// Claims represents the JWT claims of a lookup session
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given session
func GenerateToken(sessionID string) (string, time.Time, error) {
	mu.RLock()
	defer mu.RUnlock()

	issuedAt := now()
	expiresAt := issuedAt.Add(tokenTTL)
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	mu.RLock()
	defer mu.RUnlock()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret, nil
	},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SessionID == "" {
		return nil, errors.New("token has no session")
	}
	return claims, nil
}
