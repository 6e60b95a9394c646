package sso

import (
	"context"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the SessionClaims in the given context
func WithClaimsContext(r context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the SessionClaims from the standard context
func GetClaims(ctx context.Context) (*SessionClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(*SessionClaims)
	return raw, ok
}

// Can is a convenience check of a policy against the claims stored in ctx.
func Can(ctx context.Context, policy Policy) bool {
	claims, ok := GetClaims(ctx)
	if !ok {
		return false
	}

	return Authorize(claims, policy) == nil
}
