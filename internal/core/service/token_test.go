package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Issue("sid-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sid, err := m.Parse(token)
	if err != nil || sid != "sid-1" {
		t.Fatalf("parse = %q, %v", sid, err)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	other, _ := NewTokenManager("other", time.Hour).Issue("sid")
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": "sid",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	noSID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("secret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sid": "sid",
	}).SignedString([]byte("secret"))

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": other,
		"expired":      expired,
		"missing sid":  noSID,
		"wrong alg":    hs512,
	} {
		if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
