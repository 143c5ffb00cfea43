package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testMaker() *TokenMaker {
	return NewTokenMaker("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	maker := testMaker()

	token, err := maker.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := maker.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %q, want user-1", claims.UserID)
	}
}

func TestTokenClassesUseDistinctSecrets(t *testing.T) {
	maker := testMaker()

	access, err := maker.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	refresh, err := maker.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := maker.ParseRefreshToken(access); err == nil {
		t.Error("access token verified as a refresh token")
	}
	if _, err := maker.ParseAccessToken(refresh); err == nil {
		t.Error("refresh token verified as an access token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	maker := NewTokenMaker("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := maker.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = maker.ParseAccessToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	maker := testMaker()

	token, err := maker.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := maker.ParseAccessToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := maker.ParseAccessToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestTokensAreUnique(t *testing.T) {
	maker := testMaker()

	a, err := maker.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := maker.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if a == b {
		t.Error("two tokens for the same user are identical")
	}
}
