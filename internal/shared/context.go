package shared

import "context"

// Identity carries the tenant scope extracted from the auth token.
type Identity struct {
	CompanyID  int64
	EmployeeID int64
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// CompanyID returns the tenant id from context, or zero when absent.
func CompanyID(ctx context.Context) int64 {
	id, _ := IdentityFromContext(ctx)
	return id.CompanyID
}
