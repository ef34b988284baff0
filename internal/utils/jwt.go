package utils

import (
	"errors"
	"strconv"
	"time"

	"usercenter/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "usercenter-api"

// GenerateToken signs an access token for the given user claims.
func GenerateToken(claims *models.UserClaims, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	accessClaims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:      claims.UserID,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string.
// It returns the claims if valid, or an error if something is wrong.
func ParseToken(tokenStr, secret string) (*models.UserClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user")
	}
	return claims, nil
}
