package auth

import (
	"context"
	"slices"

	"localwear-be/internal/apperror"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Principal is the resolved caller of an operation.
type Principal struct {
	UserID uint
	Email  string
	Role   Role
}

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// Authorize admits p when its role is one of required. An empty required set means public.
func Authorize(p *Principal, required ...Role) error {
	if len(required) == 0 {
		return nil
	}
	if p == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if !slices.Contains(required, p.Role) {
		return apperror.Forbidden("Access denied")
	}
	return nil
}
