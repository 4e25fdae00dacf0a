package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medibook/backend/internal/domain"
)

func TestJWT_SignVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "medibook")

	tok, err := s.SignAccessToken("u1", "admin", 3, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token")
	}

	claims, err := s.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "admin" || claims.Ver != 3 {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Exp.Before(time.Now()) {
		t.Fatalf("expected future expiry, got %v", claims.Exp)
	}
}

func TestJWT_Expired_ReturnsTokenExpired(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "medibook")

	tok, err := s.SignAccessToken("u1", "user", 0, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = s.VerifyAccessToken(tok)
	if !domain.Is(err, "token_expired") {
		t.Fatalf("expected token_expired, got %v", err)
	}
}

func TestJWT_WrongSecret_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s1 := NewJWTSigner("secret-one", "medibook")
	s2 := NewJWTSigner("secret-two", "medibook")

	tok, err := s1.SignAccessToken("u1", "user", 0, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = s2.VerifyAccessToken(tok)
	if !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}

func TestJWT_TamperedPayload_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "medibook")

	tok, err := s.SignAccessToken("u1", "user", 0, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	// Flip a byte in the payload segment.
	b := []byte(tok)
	mid := len(b) / 2
	if b[mid] == 'a' {
		b[mid] = 'b'
	} else {
		b[mid] = 'a'
	}

	_, err = s.VerifyAccessToken(string(b))
	if !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}

func TestJWT_AlgNone_Rejected(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "medibook")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid":  "u1",
		"role": "admin",
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	_, err = s.VerifyAccessToken(tok)
	if !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}

func TestJWT_Garbage_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("test-secret", "medibook")

	_, err := s.VerifyAccessToken("not.a.jwt")
	if !domain.Is(err, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", err)
	}
}
