// Package service implements the membership operations
package service

import (
	"context"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/services/membership/domain"

	listdom "audiencehub/internal/services/lists/domain"
	tenancy "audiencehub/internal/services/tenancy/domain"
)

// Svc manages the company-membership relation for lists and segments
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the membership service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("membership service requires a db")
	}
	if binder == nil {
		panic("membership service requires a repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// compact drops empty ids and deduplicates, preserving first-seen order
func compact(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddMembers bulk-adds companies to a static company list. Re-adding a
// present member is a successful no-op. Only list-kind, company-subtype rows
// accept direct membership writes.
func (s *Svc) AddMembers(ctx context.Context, tn tenancy.Context, listID string, companyIDs []string) error {
	if err := tn.RequireWrite(); err != nil {
		return err
	}
	ids := compact(companyIDs)
	if len(ids) == 0 {
		return perr.WithField(perr.Validationf("no company ids to add"), "company_ids")
	}

	r := s.binder.Bind(s.db)
	t, err := r.Target(ctx, tn, listdom.KindList, listID)
	if err != nil {
		return err
	}
	if t.Subtype != listdom.SubtypeCompany {
		return perr.Unsupportedf("%s list does not accept company members", t.Subtype)
	}

	_, err = r.Upsert(ctx, listID, ids)
	return err
}

// Check reports, for each distinct non-empty input id, whether it is
// currently a member. Subtype is not enforced here, only existence and scope.
func (s *Svc) Check(
	ctx context.Context,
	tn tenancy.Context,
	listID string,
	companyIDs []string,
) (map[string]bool, error) {
	if err := tn.RequireRead(); err != nil {
		return nil, err
	}
	ids := compact(companyIDs)
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	r := s.binder.Bind(s.db)
	if _, err := r.Target(ctx, tn, listdom.KindList, listID); err != nil {
		return nil, err
	}

	present, err := r.Existing(ctx, listID, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = false
	}
	for _, id := range present {
		out[id] = true
	}
	return out, nil
}

// Remove deletes one membership from a list-kind row. Removing an absent
// member is a no-op, mirroring the duplicate-tolerant add.
func (s *Svc) Remove(ctx context.Context, tn tenancy.Context, listID, companyID string) error {
	return s.remove(ctx, tn, listdom.KindList, listID, companyID)
}

// RemoveFromSegment deletes one membership from a segment-kind row
func (s *Svc) RemoveFromSegment(ctx context.Context, tn tenancy.Context, segmentID, companyID string) error {
	return s.remove(ctx, tn, listdom.KindSegment, segmentID, companyID)
}

func (s *Svc) remove(ctx context.Context, tn tenancy.Context, kind listdom.Kind, listID, companyID string) error {
	if err := tn.RequireWrite(); err != nil {
		return err
	}
	if companyID == "" {
		return perr.WithField(perr.Validationf("company id required"), "company_id")
	}

	r := s.binder.Bind(s.db)
	if _, err := r.Target(ctx, tn, kind, listID); err != nil {
		return err
	}
	_, err := r.Delete(ctx, listID, companyID)
	return err
}

// CountMembers returns the membership cardinality of one list. This is the
// per-row counter the catalog page consumes.
func (s *Svc) CountMembers(ctx context.Context, tn tenancy.Context, listID string) (int, error) {
	if err := tn.RequireRead(); err != nil {
		return 0, err
	}
	return s.binder.Bind(s.db).Count(ctx, listID)
}

// MemberIDs returns one stable-ordered page of member ids
func (s *Svc) MemberIDs(
	ctx context.Context,
	tn tenancy.Context,
	listID string,
	limit, offset int,
) ([]string, error) {
	if err := tn.RequireRead(); err != nil {
		return nil, err
	}
	return s.binder.Bind(s.db).MemberIDs(ctx, listID, limit, offset)
}
