package domain

import (
	"context"

	tenancy "audiencehub/internal/services/tenancy/domain"
)

// ServicePort is the operation surface the transport mounts. Every call takes
// the already-resolved tenancy.Context explicitly; nothing here reaches for
// ambient state.
type ServicePort interface {
	List(ctx context.Context, tn tenancy.Context, kind Kind, in PageInput) (ListPage, error)
	Get(ctx context.Context, tn tenancy.Context, kind Kind, id string) (List, error)
	Create(ctx context.Context, tn tenancy.Context, authUserID string, kind Kind, in CreateInput) (List, error)
	Update(ctx context.Context, tn tenancy.Context, kind Kind, id string, in UpdateInput) (List, error)
	SoftDelete(ctx context.Context, tn tenancy.Context, kind Kind, id string) error
	Duplicate(ctx context.Context, tn tenancy.Context, authUserID, id string) (CopyResult, error)
}

// MemberCounter is the seam the catalog page uses for per-row member counts.
// The page issues one count per row; a single row's failure never aborts the
// page.
type MemberCounter interface {
	CountMembers(ctx context.Context, tn tenancy.Context, listID string) (int, error)
}

// MembershipPort is what duplication needs from the membership service
type MembershipPort interface {
	MemberCounter

	// MemberIDs returns one page of member company ids in a stable order
	MemberIDs(ctx context.Context, tn tenancy.Context, listID string, limit, offset int) ([]string, error)

	// AddMembers bulk-adds company ids with duplicate-ignore semantics
	AddMembers(ctx context.Context, tn tenancy.Context, listID string, companyIDs []string) error
}
