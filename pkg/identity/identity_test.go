package identity

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderCustomerID, "customer-1")
	r.Header.Set(HeaderCustomerRole, RoleManager)

	p := FromRequest(r)
	if p.ID != "customer-1" || p.Role != RoleManager {
		t.Errorf("principal = %+v", p)
	}
}

func TestFromRequest_DefaultsToCustomerRole(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(HeaderCustomerID, "customer-1")

	if p := FromRequest(r); p.Role != RoleCustomer {
		t.Errorf("role = %s, want %s", p.Role, RoleCustomer)
	}
}

func TestFromContext(t *testing.T) {
	ctx := WithPrincipal(context.Background(), Principal{ID: "customer-1", Role: RoleAdmin})

	p, ok := FromContext(ctx)
	if !ok || p.ID != "customer-1" || !p.IsAdmin() {
		t.Errorf("principal = %+v, ok = %v", p, ok)
	}
}

func TestFromContext_MissingOrEmpty(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("bare context must not carry a principal")
	}

	ctx := WithPrincipal(context.Background(), Principal{})
	if _, ok := FromContext(ctx); ok {
		t.Error("a principal without an ID is not authenticated")
	}
}
