package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "s3cret"
	tok, err := NewAccessToken(secret, 99, "MENTOR", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if remaining := time.Until(tok.Exp); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Fatalf("unexpected expiry %v", tok.Exp)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 99 {
		t.Fatalf("sub = %v, want 99", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "MENTOR" {
		t.Fatalf("role = %v, want MENTOR", claims["role"])
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("two refresh tokens share the same raw value")
	}
	if len(a.Raw) != 96 { // 48 random bytes hex encoded
		t.Fatalf("raw length = %d, want 96", len(a.Raw))
	}
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	if h1 != h2 {
		t.Fatal("hash not deterministic")
	}
	if h1 == HashRefreshRaw("abd") {
		t.Fatal("different inputs hash equal")
	}
	if len(h1) != 64 { // sha256 hex
		t.Fatalf("hash length = %d, want 64", len(h1))
	}
}
