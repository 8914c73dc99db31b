package actorcontext

import (
	"context"
	"strings"
)

// UnknownActor is stamped when a mutating request carries no identity.
const UnknownActor = "unknown"

type contextKey struct{}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, contextKey{}, strings.TrimSpace(actor))
}

// ActorFromContext returns the acting user, falling back to UnknownActor.
func ActorFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(contextKey{}).(string); ok && value != "" {
		return value
	}
	return UnknownActor
}
