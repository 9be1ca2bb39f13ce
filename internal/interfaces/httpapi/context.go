package httpapi

import (
	"context"

	"github.com/goalpool/prediction-league/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "httpapi.principal"

// withPrincipal stores the verified caller for the rest of the request.
// Only RequireAuth writes it; handlers read it through principalFromContext.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}
