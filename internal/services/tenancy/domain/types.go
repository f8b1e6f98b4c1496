// Package domain defines tenancy types and the resolution rules
package domain

import (
	perr "audiencehub/internal/platform/errors"
)

// Session is the authenticated caller as seen by this core: the auth-layer
// subject plus whatever customer id the token claims carried. Building it is
// the transport's job; an absent session never reaches this package.
type Session struct {
	// UserID is the authentication identity (token subject), not the
	// application user id. See ServicePort.AppUserID for the one-hop lookup.
	UserID string

	// TenantClaim is the customer id embedded in the token claims, if any.
	// When present it takes precedence over the oracle-computed value.
	TenantClaim string
}

// Privileges is what the privilege oracle reports for a caller.
type Privileges struct {
	SystemAdmin bool

	// CustomerIDs is the oracle-computed current customer. The upstream
	// source hands it back wrapped in a collection of at most one element;
	// ResolveTenant unwraps the first.
	CustomerIDs []string
}

// Context is the tenancy every operation is scoped to. It is resolved once
// per request and never cached across requests: a system admin may switch the
// customer they act as between any two calls.
type Context struct {
	// CustomerID is the effective customer scope; empty means unscoped.
	CustomerID string

	// SystemAdmin marks platform-wide visibility. An unscoped admin reads
	// across all customers but cannot create rows (nothing to attribute
	// ownership to).
	SystemAdmin bool
}

// Scoped reports whether a concrete customer scope was resolved.
func (c Context) Scoped() bool { return c.CustomerID != "" }

// RequireRead fails when the caller has neither a customer scope nor
// platform-wide visibility. This is the fail-fast gate every list/segment
// operation runs first.
func (c Context) RequireRead() error {
	if !c.Scoped() && !c.SystemAdmin {
		return perr.NoTenantf("no customer scope resolved for caller")
	}
	return nil
}

// RequireWrite fails unless a concrete customer scope was resolved. Admin
// breadth never extends to creation.
func (c Context) RequireWrite() error {
	if !c.Scoped() {
		return perr.NoTenantf("a customer scope is required for this operation")
	}
	return nil
}

// ResolveTenant merges the two authority sources into a Context.
// Precedence: a non-empty claims-embedded customer id wins; otherwise the
// oracle-computed value applies, unwrapped from its single-element collection.
func ResolveTenant(claim string, oracleCustomers []string, systemAdmin bool) Context {
	out := Context{SystemAdmin: systemAdmin}
	if claim != "" {
		out.CustomerID = claim
		return out
	}
	if len(oracleCustomers) > 0 {
		out.CustomerID = oracleCustomers[0]
	}
	return out
}
