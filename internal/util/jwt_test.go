package util

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, 42, "Ada", "Lovelace", 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.FirstName != "Ada" || claims.LastName != "Lovelace" {
		t.Errorf("name = %s %s, want Ada Lovelace", claims.FirstName, claims.LastName)
	}
}

// A zero ttl must not add an exp claim: the token stays verifiable.
func TestGenerateToken_NoExpiry(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "A", "B", 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil", claims.ExpiresAt)
	}
}

func TestGenerateToken_WithExpiry(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "A", "B", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt = nil, want set")
	}
}

func TestParseToken_Expired(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("ParseToken() error = nil, want expired error")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "A", "B", 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("ParseToken() error = nil, want signature error")
	}
}

func TestParseToken_Tampered(t *testing.T) {
	token, err := GenerateToken(testSecret, 1, "A", "B", 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// flip a character in the payload segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := ParseToken(testSecret, tampered); err == nil {
		t.Error("ParseToken() error = nil, want verification error")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	testCases := []string{"", "garbage", "a.b", "a.b.c.d"}

	for _, tokenStr := range testCases {
		if _, err := ParseToken(testSecret, tokenStr); err == nil {
			t.Errorf("ParseToken(%q) error = nil, want error", tokenStr)
		}
	}
}
