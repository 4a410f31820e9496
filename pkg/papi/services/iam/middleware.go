package iam

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Middleware attaches the verified session to the request context. Requests
// without a valid bearer token pass through anonymously; handlers decide
// whether that is acceptable.
func (s *IAMService) Middleware() func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			next(ctx)
			return
		}

		claims, err := s.verifier.Verify(token)
		if err != nil {
			s.logger.Debug("rejected session token", "path", ctx.URL().Path, "error", err)
			next(ctx)
			return
		}

		next(huma.WithValue(ctx, principalKey, claims))
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
