package middleware

import "context"

type contextKey string

const (
	ContextKeyUsername contextKey = "username"
	ContextKeyUserRole contextKey = "role"
)

// WithOperator stores the authenticated operator identity in the context.
func WithOperator(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUsername, username)
	ctx = context.WithValue(ctx, ContextKeyUserRole, role)
	return ctx
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUsername).(string)
	return v, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserRole).(string)
	return v, ok
}
