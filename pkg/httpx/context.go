package httpx

import "context"

// Principal is the authenticated identity attached to a request after
// successful token validation. It is request-scoped: constructed once by
// the bearer middleware, read by handlers, discarded at request end.
type Principal struct {
	UserID int64
	Role   string
	Email  string
}

type ctxKey struct{}

func contextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the authenticated principal, if any. The
// second return is false for unauthenticated requests; that absence is the
// single signal route policy acts on.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
