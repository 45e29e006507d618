package utils

import (
	"errors"
	"time"

	"calbot/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "calbot-dev-secret"
	}
	return []byte(secret)
}

// GenerateSessionToken creates a signed JWT whose subject is the chat
// session id. The token expires with the session TTL.
func GenerateSessionToken(sessionID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractSessionIDFromToken extracts the session id (subject) from a valid
// token string.
func ExtractSessionIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	sessionID, ok := claims["sub"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("token missing session id")
	}
	return sessionID, nil
}
