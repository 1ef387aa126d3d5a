// Package tenant carries the caller's tenant and restaurant on the request
// context and lets a few trusted paths opt out of tenant scoping explicitly.
package tenant

import (
	"context"
	"errors"
)

var ErrMissingTenant = errors.New("tenant scope required but not present")

type Scope struct {
	TenantID     int64
	RestaurantID int64
}

type scopeKey struct{}

type unscopedKey struct{}

func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok && s.TenantID != 0
}

// MustRestaurant returns the scope or ErrMissingTenant when either id is absent.
func MustRestaurant(ctx context.Context) (Scope, error) {
	s, ok := FromContext(ctx)
	if !ok || s.RestaurantID == 0 {
		return Scope{}, ErrMissingTenant
	}
	return s, nil
}

// WithoutScope marks ctx for cross-tenant queries. Only the callback
// reconcilers and the shift-close order cross-check use it, since the
// gateway has no tenant context.
func WithoutScope(ctx context.Context) context.Context {
	return context.WithValue(ctx, unscopedKey{}, true)
}

func Unscoped(ctx context.Context) bool {
	v, _ := ctx.Value(unscopedKey{}).(bool)
	return v
}

// Filter returns the tenant id a repository must filter by, or nil for an
// unscoped context.
func Filter(ctx context.Context) (*int64, error) {
	if Unscoped(ctx) {
		return nil, nil
	}
	s, ok := FromContext(ctx)
	if !ok {
		return nil, ErrMissingTenant
	}
	id := s.TenantID
	return &id, nil
}
