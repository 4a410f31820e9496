package pauth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestIssueVerifyRoundTrip(t *testing.T) {
	v := NewVerifier(testSecret)

	token, err := v.Issue(" Nova@Example.com ", "Nova", "https://img/nova.png", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	sc, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if sc.Email != "nova@example.com" {
		t.Errorf("email should be normalized, got %q", sc.Email)
	}
	if sc.Name != "Nova" || sc.Picture != "https://img/nova.png" {
		t.Errorf("profile mismatch: %#v", sc)
	}
	if sc.Iss != Issuer || sc.Aud != Audience {
		t.Errorf("iss/aud mismatch: %#v", sc)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewVerifier(testSecret).Issue("a@b.c", "A", "", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewVerifier("another-secret-another-secret-xx").Verify(token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewVerifier(testSecret)
	v.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := v.Issue("a@b.c", "A", "", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := NewVerifier(testSecret).Verify(token); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestVerify_RejectsForeignAudience(t *testing.T) {
	mc := ToClaims(&SessionClaims{
		Email: "a@b.c",
		Aud:   "someone-else",
		Exp:   time.Now().Add(time.Hour).Unix(),
	})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = NewVerifier(testSecret).Verify(token)
	if !errors.Is(err, ErrBadAudience) {
		t.Fatalf("expected ErrBadAudience, got %v", err)
	}
}

func TestVerify_RequiresEmail(t *testing.T) {
	mc := ToClaims(&SessionClaims{
		Name: "Anon",
		Aud:  Audience,
		Exp:  time.Now().Add(time.Hour).Unix(),
	})
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = NewVerifier(testSecret).Verify(token)
	if !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}

func TestFromMapClaimsHandlesListAudience(t *testing.T) {
	mc := jwt.MapClaims{
		"email": "bob@example.com",
		"aud":   []interface{}{"web", Audience},
		"iat":   float64(1600),
		"exp":   float64(1700),
	}

	sc := FromMapClaims(mc)
	if sc.Aud != Audience {
		t.Errorf("expected audience %q, got %q", Audience, sc.Aud)
	}
	if sc.Iat != 1600 || sc.Exp != 1700 {
		t.Errorf("numeric claims not normalized: %#v", sc)
	}
}

func TestIssue_RequiresEmail(t *testing.T) {
	if _, err := NewVerifier(testSecret).Issue("  ", "x", "", time.Hour); !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}
