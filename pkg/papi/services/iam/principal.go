package iam

import (
	"context"

	"github.com/quatton/portfolio/pkg/pauth"
	"github.com/quatton/portfolio/pkg/streak"
)

type ctxKey string

const principalKey ctxKey = "portfolio.principal"

func (s *IAMService) Principal(ctx context.Context) (*pauth.SessionClaims, bool) {
	if v := ctx.Value(principalKey); v != nil {
		if p, ok := v.(*pauth.SessionClaims); ok {
			return p, true
		}
	}
	return nil, false
}

// Identity resolves the request principal into the caller the streak engine
// acts on. It fails with streak.ErrUnauthenticated when no valid session was
// presented.
func (s *IAMService) Identity(ctx context.Context) (streak.Identity, error) {
	p, ok := s.Principal(ctx)
	if !ok || p == nil || p.Email == "" {
		return streak.Identity{}, streak.ErrUnauthenticated
	}
	return streak.Identity{
		Email:     p.Email,
		Name:      p.Name,
		AvatarURL: p.Picture,
	}, nil
}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p *pauth.SessionClaims) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
