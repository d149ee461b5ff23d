package utils

import (
	"fmt"

	"clinic-app-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims carried by a session token.
//
// The token deliberately carries no expiry claim: session lifetime is stored
// on the sessions row per the user's configuration, and resolution only
// checks that the row has not been revoked.
type SessionClaims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	SessionID string      `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for a user and session id.
func GenerateSessionToken(user *models.User, sessionID string, secretKey string) (string, error) {
	claims := &SessionClaims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns its claims.
func ValidateSessionToken(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
