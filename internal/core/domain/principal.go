package domain

import "context"

// Role is a coarse authorization grant carried by a principal.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole reports the role named by s. Names are case-sensitive.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Principal is the identity a request authenticates as.
type Principal struct {
	Username   string
	SecretHash string
	Role       Role
}

// RolesOf maps a principal to the roles it is authorized for.
func RolesOf(p Principal) []Role {
	if p.Role == "" {
		return nil
	}
	return []Role{p.Role}
}

// AuthenticationResult is the outcome of a single credential check. A zero Err
// means the principal was authenticated; otherwise Err is ErrUserNotFound or
// ErrBadCredentials.
type AuthenticationResult struct {
	Principal Principal
	Roles     []Role
	Err       error
}

func Authenticated(p Principal) AuthenticationResult {
	return AuthenticationResult{Principal: p, Roles: RolesOf(p)}
}

func Rejected(reason error) AuthenticationResult {
	return AuthenticationResult{Err: reason}
}

// Authenticated reports whether the result carries a principal.
func (r AuthenticationResult) Authenticated() bool {
	return r.Err == nil
}

type principalCtxKey struct{}

// ContextWithPrincipal returns a copy of ctx carrying p.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal stored by ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}
