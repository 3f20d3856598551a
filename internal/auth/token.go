package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers structural defects: bad signature, wrong signing
	// method, malformed compact form, or a missing subject claim.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned once the exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenIssuer mints and validates HS256 bearer tokens carrying a username
// subject and an expiry. Tokens are stateless: there is no server-side session
// record and no revocation.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	loc    *time.Location

	// now is swapped in tests to exercise expiry.
	now func() time.Time
}

// NewTokenIssuer builds an issuer signing with secret for the given lifetime.
// All timestamps are computed in loc so every deployment mints against the
// same canonical clock reference.
func NewTokenIssuer(secret []byte, ttl time.Duration, loc *time.Location) *TokenIssuer {
	if loc == nil {
		loc = time.UTC
	}
	t := &TokenIssuer{secret: secret, ttl: ttl, loc: loc}
	t.now = func() time.Time { return time.Now().In(loc) }
	return t
}

// Issue signs a token asserting subject, expiring ttl from now.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate verifies the signature and expiry of token and returns its subject.
// Expiry is compared against the exact current time, no skew window.
func (t *TokenIssuer) Validate(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(tok *jwt.Token) (interface{}, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return t.secret, nil
		},
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
