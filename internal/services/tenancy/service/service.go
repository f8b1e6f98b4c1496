// Package service implements tenancy resolution over the privilege oracle
package service

import (
	"context"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/services/tenancy/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the tenancy service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("tenancy.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("tenancy.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// Resolve consults the oracle and applies the claim-wins precedence.
// Oracle failures come back as a single wrapped error carrying the oracle's
// message; an admin with no customer resolves cleanly to an unscoped Context.
func (s *Svc) Resolve(ctx context.Context, sess domain.Session) (domain.Context, error) {
	if sess.UserID == "" {
		return domain.Context{}, perr.Unauthorizedf("no authenticated session")
	}
	priv, err := s.binder.Bind(s.db).Privileges(ctx, sess.UserID)
	if err != nil {
		return domain.Context{}, perr.Wrap(err, perr.ErrorCodeDB, "privilege oracle failed")
	}
	return domain.ResolveTenant(sess.TenantClaim, priv.CustomerIDs, priv.SystemAdmin), nil
}

// AppUserID maps the auth identity to the application user id
func (s *Svc) AppUserID(ctx context.Context, authUserID string) (string, error) {
	return s.binder.Bind(s.db).AppUserID(ctx, authUserID)
}
