// Package domain holds membership types and ports
package domain

import (
	"context"

	listdom "audiencehub/internal/services/lists/domain"
	tenancy "audiencehub/internal/services/tenancy/domain"
)

// Target is the shape of the owning row a membership write is aimed at
type Target struct {
	Kind     listdom.Kind
	Subtype  listdom.Subtype
	IsStatic bool
}

// Repo is the storage port for the membership relation
type Repo interface {
	// Target fetches the owning row's shape under the given scope and kind.
	// A missing, deleted, or cross-customer row is a not-found.
	Target(ctx context.Context, tn tenancy.Context, kind listdom.Kind, listID string) (Target, error)

	// Upsert inserts memberships, ignoring pairs that already exist.
	// Returns the number of rows actually written.
	Upsert(ctx context.Context, listID string, companyIDs []string) (int64, error)

	// Existing returns the subset of companyIDs currently member of the list
	Existing(ctx context.Context, listID string, companyIDs []string) ([]string, error)

	// Delete removes one membership pair; returns rows removed (0 or 1)
	Delete(ctx context.Context, listID, companyID string) (int64, error)

	// Count returns the membership cardinality of one list
	Count(ctx context.Context, listID string) (int, error)

	// MemberIDs returns one stable-ordered page of member company ids
	MemberIDs(ctx context.Context, listID string, limit, offset int) ([]string, error)
}

// CompanyIDsInput carries the company ids of a bulk membership operation
type CompanyIDsInput struct {
	CompanyIDs []string `json:"company_ids" validate:"required,min=1" example:"382c0f90-6cd7-4fb3-9d3d-6d1459275287"`
}

// ServicePort is the membership surface consumed by transport and by the
// lists vertical (which sees it through its own narrower port types).
type ServicePort interface {
	AddMembers(ctx context.Context, tn tenancy.Context, listID string, companyIDs []string) error
	Check(ctx context.Context, tn tenancy.Context, listID string, companyIDs []string) (map[string]bool, error)
	Remove(ctx context.Context, tn tenancy.Context, listID, companyID string) error
	RemoveFromSegment(ctx context.Context, tn tenancy.Context, segmentID, companyID string) error
	CountMembers(ctx context.Context, tn tenancy.Context, listID string) (int, error)
	MemberIDs(ctx context.Context, tn tenancy.Context, listID string, limit, offset int) ([]string, error)
}
