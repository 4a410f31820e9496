// Package pauth verifies and mints the session tokens that identify a caller.
// Tokens are HS256 JWTs carrying the profile the OAuth provider handed to the
// web layer: email, display name and avatar.
package pauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer is written into every token minted by this service.
	Issuer = "portfolio"
	// Audience is the expected audience claim for session tokens.
	Audience = "strike"
)

var (
	ErrMissingEmail = errors.New("session token has no email claim")
	ErrBadAudience  = errors.New("session token audience mismatch")
)

// SessionClaims is the flat view of a session token payload.
type SessionClaims struct {
	Email   string
	Name    string
	Picture string
	Iss     string
	Aud     string
	Iat     int64
	Exp     int64
}

// FromMapClaims maps raw token claims into SessionClaims. It tolerates the
// numeric forms jwt produces for `iat`/`exp` and a list-valued `aud`.
func FromMapClaims(mc jwt.MapClaims) *SessionClaims {
	sc := &SessionClaims{}

	if email, ok := mc["email"].(string); ok {
		sc.Email = strings.ToLower(strings.TrimSpace(email))
	}
	if name, ok := mc["name"].(string); ok {
		sc.Name = name
	}
	if picture, ok := mc["picture"].(string); ok {
		sc.Picture = picture
	}
	if iss, ok := mc["iss"].(string); ok {
		sc.Iss = iss
	}

	switch v := mc["aud"].(type) {
	case string:
		sc.Aud = v
	case []interface{}:
		for _, a := range v {
			if s, ok := a.(string); ok && s == Audience {
				sc.Aud = s
			}
		}
	}

	sc.Iat = unixClaim(mc["iat"])
	sc.Exp = unixClaim(mc["exp"])

	return sc
}

func unixClaim(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	}
	return 0
}

// ToClaims converts SessionClaims into jwt.MapClaims suitable for signing.
// Empty fields are left out to keep the token compact.
func ToClaims(sc *SessionClaims) jwt.MapClaims {
	mc := jwt.MapClaims{}
	if sc.Email != "" {
		mc["email"] = sc.Email
		mc["sub"] = sc.Email
	}
	if sc.Name != "" {
		mc["name"] = sc.Name
	}
	if sc.Picture != "" {
		mc["picture"] = sc.Picture
	}
	if sc.Iss != "" {
		mc["iss"] = sc.Iss
	}
	if sc.Aud != "" {
		mc["aud"] = sc.Aud
	}
	if sc.Iat != 0 {
		mc["iat"] = sc.Iat
	}
	if sc.Exp != 0 {
		mc["exp"] = sc.Exp
	}
	return mc
}

// Verifier checks session tokens signed with a shared secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify validates the signature, expiry and audience of a token and returns
// its claims. Only HMAC signing is accepted to avoid algorithm confusion.
func (v *Verifier) Verify(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	sc := FromMapClaims(mc)
	if sc.Email == "" {
		return nil, ErrMissingEmail
	}
	if sc.Aud != Audience {
		return nil, ErrBadAudience
	}
	return sc, nil
}

// Issue signs a session token for the given profile, valid for ttl.
func (v *Verifier) Issue(email, name, picture string, ttl time.Duration) (string, error) {
	now := v.now()
	sc := &SessionClaims{
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Name:    name,
		Picture: picture,
		Iss:     Issuer,
		Aud:     Audience,
		Iat:     now.Unix(),
		Exp:     now.Add(ttl).Unix(),
	}
	if sc.Email == "" {
		return "", ErrMissingEmail
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ToClaims(sc))
	return token.SignedString(v.secret)
}
