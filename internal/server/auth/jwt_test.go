package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("session-123", secret, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetSessionIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetSessionIDFromToken error: %v", err)
	}
	if got != "session-123" {
		t.Fatalf("session id mismatch: got %q want %q", got, "session-123")
	}
}

func TestGetSessionIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("s1", secret, time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	id, err := GetSessionIDFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
	if id != "s1" {
		t.Fatalf("expected session id of expired token, got %q", id)
	}
}

func TestGetSessionIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("s2", []byte("right-secret-right-secret-right-s"), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSessionIDFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetSessionIDFromToken_Tampered(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("s3", secret, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	b := []byte(tok)
	i := strings.LastIndexByte(tok, '.') + 1
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := GetSessionIDFromToken(string(b), secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetSessionIDFromToken_ExpiredWithWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("s1", []byte("another-secret-another-secret-xx"), time.Now().Add(-time.Second))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	id, err := GetSessionIDFromToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) || id != "" {
		t.Fatalf("expected common.ErrInvalidToken and no id, got %q, %v", id, err)
	}
}

func TestGetSessionIDFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		ID:        "s4",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := GetSessionIDFromToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetSessionIDFromToken_MissingClaims(t *testing.T) {
	t.Parallel()

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "s5"}).SignedString(secret)
	noID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)

	for _, tok := range []string{noExp, noID, "not.a.jwt", ""} {
		if _, err := GetSessionIDFromToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("token %q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}
