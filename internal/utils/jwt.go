package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/inanin-user/crm-system-sub001/internal/config"
	"github.com/inanin-user/crm-system-sub001/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "crm-api"

var ErrSecretNotConfigured = errors.New("JWT_SECRET not configured")

func accessTokenTTL() time.Duration {
	return config.GetDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
}

func refreshTokenTTL() time.Duration {
	return config.GetDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour)
}

// GenerateTokens issues an access/refresh token pair for the given user
// claims. Lifetimes are tunable via JWT_ACCESS_TTL and JWT_REFRESH_TTL.
func GenerateTokens(claims *models.UserClaims) (accessToken string, refreshToken string, err error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", "", ErrSecretNotConfigured
	}

	accessToken, err = signToken(claims, accessTokenTTL(), []byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshToken, err = signToken(claims, refreshTokenTTL(), []byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func signToken(claims *models.UserClaims, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	signed := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
		},
		UserID:       claims.UserID,
		Username:     claims.Username,
		Role:         claims.Role,
		Permissions:  claims.Permissions,
		TokenVersion: claims.TokenVersion,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, signed).SignedString(secret)
}

// ParseToken parses and validates a JWT token string.
func ParseToken(tokenStr string) (*jwt.Token, *models.UserClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, nil, errors.New("invalid token claims")
	}

	return token, claims, nil
}
