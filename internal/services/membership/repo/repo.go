// Package repo provides Postgres bindings for the membership relation
package repo

import (
	"context"
	"fmt"
	"strings"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/platform/store"
	"audiencehub/internal/services/membership/domain"

	listdom "audiencehub/internal/services/lists/domain"
	tenancy "audiencehub/internal/services/tenancy/domain"
)

type (
	// PG is a Postgres binder for the membership repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for the membership repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// Target fetches the owning row's shape. The kind is part of the predicate,
// so aiming a list operation at a segment id (or vice versa) reads as absent.
func (r *queries) Target(
	ctx context.Context,
	tn tenancy.Context,
	kind listdom.Kind,
	listID string,
) (domain.Target, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT list_type, subtype, is_static FROM lists\n")
	sb.WriteString("WHERE id = " + arg(listID) + "::uuid AND list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}

	t, err := store.One(ctx, r.q, func(row store.Row) (domain.Target, error) {
		var t domain.Target
		err := row.Scan(&t.Kind, &t.Subtype, &t.IsStatic)
		return t, err
	}, sb.String(), args...)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Target{}, perr.NotFoundf("%s not found", kind)
		}
		return domain.Target{}, perr.FromPostgres(err, "fetch membership target")
	}
	return t, nil
}

// Upsert inserts memberships, ignoring already-present pairs
func (r *queries) Upsert(ctx context.Context, listID string, companyIDs []string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO list_companies (list_id, company_id)
		SELECT $1::uuid, unnest($2::text[])
		ON CONFLICT (list_id, company_id) DO NOTHING`,
		listID, companyIDs,
	)
	if err != nil {
		return 0, perr.FromPostgres(err, "insert memberships")
	}
	return tag.RowsAffected(), nil
}

// Existing returns the subset of companyIDs that are current members
func (r *queries) Existing(ctx context.Context, listID string, companyIDs []string) ([]string, error) {
	rows, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	}, `
		SELECT company_id FROM list_companies
		WHERE list_id = $1::uuid AND company_id = ANY($2::text[])`,
		listID, companyIDs,
	)
	if err != nil {
		return nil, perr.FromPostgres(err, "check memberships")
	}
	return rows, nil
}

// Delete removes one membership pair
func (r *queries) Delete(ctx context.Context, listID, companyID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM list_companies
		WHERE list_id = $1::uuid AND company_id = $2`,
		listID, companyID,
	)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete membership")
	}
	return tag.RowsAffected(), nil
}

// Count returns the membership cardinality of one list
func (r *queries) Count(ctx context.Context, listID string) (int, error) {
	n, err := store.Scalar[int](ctx, r.q,
		`SELECT count(*) FROM list_companies WHERE list_id = $1::uuid`, listID)
	if err != nil {
		return 0, perr.FromPostgres(err, "count memberships")
	}
	return n, nil
}

// MemberIDs returns one page of member ids in stable company_id order, so
// repeated paging over an unchanged list never skips or repeats rows
func (r *queries) MemberIDs(ctx context.Context, listID string, limit, offset int) ([]string, error) {
	rows, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	}, `
		SELECT company_id FROM list_companies
		WHERE list_id = $1::uuid
		ORDER BY company_id
		LIMIT $2 OFFSET $3`,
		listID, limit, offset,
	)
	if err != nil {
		return nil, perr.FromPostgres(err, "page memberships")
	}
	return rows, nil
}
