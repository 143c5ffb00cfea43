package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenMaker signs and verifies the two token classes. Access and refresh
// tokens use separate secrets, so one class never verifies as the other.
type TokenMaker struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenMaker(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenMaker {
	return &TokenMaker{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenMaker) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *TokenMaker) GenerateAccessToken(userID string) (string, error) {
	return sign(userID, m.accessSecret, m.accessTTL)
}

func (m *TokenMaker) GenerateRefreshToken(userID string) (string, error) {
	return sign(userID, m.refreshSecret, m.refreshTTL)
}

// GeneratePair issues a fresh access+refresh pair for one user.
func (m *TokenMaker) GeneratePair(userID string) (string, string, error) {
	access, err := m.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *TokenMaker) ParseAccessToken(tokenString string) (*JWTClaims, error) {
	return parse(tokenString, m.accessSecret)
}

func (m *TokenMaker) ParseRefreshToken(tokenString string) (*JWTClaims, error) {
	return parse(tokenString, m.refreshSecret)
}

func sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every token unique, so rotation always replaces
			// the stored refresh token with a different string
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parse(tokenString string, secret []byte) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
