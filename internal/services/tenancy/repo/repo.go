// Package repo provides Postgres bindings for the tenancy oracle
package repo

import (
	"context"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/platform/store"
	"audiencehub/internal/services/tenancy/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for the tenancy repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// Privileges reports the admin flag and the computed current customer for an
// auth identity. A caller unknown to app_users is simply unprivileged and
// unscoped, not an error.
func (r *queries) Privileges(ctx context.Context, authUserID string) (domain.Privileges, error) {
	var out domain.Privileges

	admin, err := store.One(ctx, r.q, func(row store.Row) (bool, error) {
		var b bool
		err := row.Scan(&b)
		return b, err
	}, `
		SELECT is_system_admin
		FROM app_users
		WHERE auth_id = $1
	`, authUserID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return out, nil
		}
		return out, err
	}
	out.SystemAdmin = admin

	// current customer arrives as a collection of at most one element; the
	// resolver unwraps it
	ids, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	}, `
		SELECT c.id::text
		FROM app_users u
		JOIN customers c ON c.id = COALESCE(u.current_customer_id, u.customer_id)
		WHERE u.auth_id = $1
	`, authUserID)
	if err != nil {
		return domain.Privileges{}, err
	}
	out.CustomerIDs = ids
	return out, nil
}

// AppUserID maps an auth identity to the application user id
func (r *queries) AppUserID(ctx context.Context, authUserID string) (string, error) {
	id, err := store.One(ctx, r.q, func(row store.Row) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	}, `
		SELECT id::text FROM app_users WHERE auth_id = $1
	`, authUserID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return "", perr.NotFoundf("no application user for caller")
		}
		return "", err
	}
	return id, nil
}
