package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated signals that the user has to sign in again.
var ErrUnauthenticated = errors.New("not signed in")

// TokenSource supplies the bearer token attached to API requests.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken serves a token read from config or the environment.
type StaticToken struct {
	Value string
	Now   func() time.Time
}

// NewStaticToken creates a token source for value.
func NewStaticToken(value string) *StaticToken {
	return &StaticToken{Value: strings.TrimSpace(value), Now: time.Now}
}

// Token returns the token, or ErrUnauthenticated when it is missing or
// carries an exp claim in the past. Opaque tokens are passed through.
func (s *StaticToken) Token() (string, error) {
	if s.Value == "" {
		return "", ErrUnauthenticated
	}
	exp, ok := Expiry(s.Value)
	if !ok {
		return s.Value, nil
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if !now().Before(exp) {
		return "", ErrUnauthenticated
	}
	return s.Value, nil
}

// Expiry reads the exp claim without verifying the signature.
// ok is false for non-JWT tokens and tokens without exp.
func Expiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
