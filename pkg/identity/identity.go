package identity

import (
	"context"
	"net/http"
)

// Principal is the authenticated caller as reported by the upstream
// identity provider. The service performs no authentication itself; it
// trusts the gateway-injected headers and treats both fields as opaque.
type Principal struct {
	ID   string
	Role string
}

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const (
	HeaderCustomerID   = "X-Customer-ID"
	HeaderCustomerRole = "X-Customer-Role"
)

type contextKey string

const principalKey contextKey = "principal"

// FromRequest reads the principal from the trusted headers. A missing
// role header means a plain customer.
func FromRequest(r *http.Request) Principal {
	role := r.Header.Get(HeaderCustomerRole)
	if role == "" {
		role = RoleCustomer
	}
	return Principal{
		ID:   r.Header.Get(HeaderCustomerID),
		Role: role,
	}
}

// WithPrincipal stores the principal on the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal installed by the identity
// middleware; ok is false when no principal was attached.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok && p.ID != ""
}

// IsAdmin reports whether the principal may read reservations it does
// not own. Mutations stay owner-only regardless of role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
