package domain

import "context"

// Repo is the storage surface the resolver needs: the privilege oracle plus
// the auth-to-app user mapping. Read-only.
type Repo interface {
	// Privileges reports the admin flag and the oracle-computed current
	// customer for an auth identity
	Privileges(ctx context.Context, authUserID string) (Privileges, error)

	// AppUserID maps the authentication identity to the application user id
	AppUserID(ctx context.Context, authUserID string) (string, error)
}

// ServicePort resolves tenancy for one operation
type ServicePort interface {
	// Resolve produces the Context the current operation must be scoped to.
	// "admin with no customer" is a success; "no customer, no admin" is not
	// an error here either - dependent operations fail via RequireRead
	Resolve(ctx context.Context, sess Session) (Context, error)

	// AppUserID is the one-hop lookup create uses to attribute ownership
	AppUserID(ctx context.Context, authUserID string) (string, error)
}
