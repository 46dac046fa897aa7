package auth

import "context"

// Identity is the resolved caller of a request. A nil *Identity means the
// request is anonymous.
type Identity struct {
	UserID   string
	Username string
	Admin    bool
}

type contextKey struct{}

// WithIdentity attaches a resolved caller identity to the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFrom extracts the caller identity from the context, returning nil
// for anonymous requests.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
