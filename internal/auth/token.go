package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

var ErrInvalidToken = errors.New("auth: invalid token received")

// WithToken returns a context carrying the bearer credential for outbound API calls.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}

// Session is the authenticated operator. Its token is held in memory only.
type Session struct {
	Token     string
	Email     string
	Role      string
	Subject   string
	ExpiresAt *time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Context attaches the session token to ctx.
func (s *Session) Context(ctx context.Context) context.Context {
	if s == nil {
		return ctx
	}
	return WithToken(ctx, s.Token)
}

// NewSession inspects a login token. Any three-segment token is accepted;
// the signature is not verified here. When the token decodes as a JWT its
// subject and expiry are read, otherwise the session carries no claims.
func NewSession(token, email, role string) (*Session, error) {
	if strings.Count(token, ".") != 2 {
		return nil, ErrInvalidToken
	}
	s := &Session{Token: token, Email: email, Role: role}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Debug().Err(err).Msg("opaque session token; no claims read")
		return s, nil
	}
	if sub, err := claims.GetSubject(); err == nil {
		s.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		s.ExpiresAt = &t
	}
	if s.Email == "" {
		s.Email = s.Subject
	}
	return s, nil
}

// BearerFrom extracts the token from an Authorization header value.
func BearerFrom(h string) string {
	const p = "Bearer "
	if len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
		return strings.TrimSpace(h[len(p):])
	}
	return ""
}
