package alerts

import "context"

var userCtxKey = &contextKey{"user"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithClaimsContext sets the SessionClaims in the given context
func WithClaimsContext(r context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the SessionClaims from the standard context
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*SessionClaims)
	return raw, ok
}
