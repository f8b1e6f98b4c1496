// Package repo provides Postgres bindings for the lists storage
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/platform/store"
	"audiencehub/internal/services/lists/domain"
	tenancy "audiencehub/internal/services/tenancy/domain"
)

// Storage is the lists repository surface
type Storage interface {
	// Page returns one catalog page ordered by updated_at descending
	Page(ctx context.Context, tn tenancy.Context, kind domain.Kind, search string, limit, offset int) ([]domain.List, error)

	// Count returns the total matching the same filters as Page
	Count(ctx context.Context, tn tenancy.Context, kind domain.Kind, search string) (int, error)

	Get(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) (domain.List, error)
	Insert(ctx context.Context, row InsertRow) (domain.List, error)
	Update(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string, patch domain.UpdateInput) (domain.List, error)
	SoftDelete(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) error
}

// InsertRow is the creation payload; filters always start empty
type InsertRow struct {
	ID          string
	CustomerID  string
	Kind        domain.Kind
	Subtype     domain.Subtype
	IsStatic    bool
	Name        string
	Description *string
	CreatedBy   string
}

type (
	// PG is a Postgres binder for Storage
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ Storage = (*queries)(nil)

// NewPG returns a Postgres binder for the lists storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

const listColumns = `
	id::text, customer_id::text, list_type, subtype, is_static,
	name, description, filters, status, created_by::text,
	created_at, updated_at`

func scanList(row store.Row) (domain.List, error) {
	var (
		l       domain.List
		cust    *string
		rawFltr []byte
	)
	err := row.Scan(
		&l.ID, &cust, &l.Kind, &l.Subtype, &l.IsStatic,
		&l.Name, &l.Description, &rawFltr, &l.Status, &l.CreatedBy,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return domain.List{}, err
	}
	if cust != nil {
		l.CustomerID = *cust
	}
	if len(rawFltr) > 0 {
		if err := json.Unmarshal(rawFltr, &l.Filters); err != nil {
			return domain.List{}, perr.Wrap(err, perr.ErrorCodeDB, "decode filters")
		}
	}
	return l, nil
}

// Page returns one catalog page. The customer filter is applied only when a
// scope was resolved; a scope-less admin reads across all customers.
func (r *queries) Page(
	ctx context.Context,
	tn tenancy.Context,
	kind domain.Kind,
	search string,
	limit, offset int,
) ([]domain.List, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT" + listColumns + "\nFROM lists\n")
	sb.WriteString("WHERE list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}
	if search != "" {
		sb.WriteString("  AND name ILIKE '%' || " + arg(search) + " || '%'\n")
	}
	// most recently touched first
	sb.WriteString("ORDER BY updated_at DESC\n")
	sb.WriteString("LIMIT " + arg(limit) + " OFFSET " + arg(offset))

	rows, err := store.Many(ctx, r.q, scanList, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "page lists")
	}
	return rows, nil
}

// Count returns the total under the same filters as Page
func (r *queries) Count(ctx context.Context, tn tenancy.Context, kind domain.Kind, search string) (int, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT count(*) FROM lists\n")
	sb.WriteString("WHERE list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}
	if search != "" {
		sb.WriteString("  AND name ILIKE '%' || " + arg(search) + " || '%'\n")
	}

	n, err := store.Scalar[int](ctx, r.q, sb.String(), args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "count lists")
	}
	return n, nil
}

// Get fetches one scoped row. A row owned by another customer and a row that
// does not exist surface the same not-found: existence must not leak across
// customers.
func (r *queries) Get(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) (domain.List, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString("SELECT" + listColumns + "\nFROM lists\n")
	sb.WriteString("WHERE id = " + arg(id) + "::uuid AND list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}

	row, err := store.One(ctx, r.q, scanList, sb.String(), args...)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.List{}, perr.NotFoundf("%s not found", kind)
		}
		return domain.List{}, perr.FromPostgres(err, "get "+string(kind))
	}
	return row, nil
}

// Insert creates a row. Status starts at "new" for the async processor and
// filters start empty; criteria arrive via a follow-up update.
func (r *queries) Insert(ctx context.Context, in InsertRow) (domain.List, error) {
	row, err := store.One(ctx, r.q, scanList, `
		INSERT INTO lists (id, customer_id, list_type, subtype, is_static, name, description, filters, status, created_by)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, '{}'::jsonb, $8, $9::uuid)
		RETURNING`+listColumns,
		in.ID, in.CustomerID, string(in.Kind), string(in.Subtype), in.IsStatic,
		in.Name, in.Description, domain.StatusNew, in.CreatedBy,
	)
	if err != nil {
		return domain.List{}, perr.FromPostgresWithField(err, "insert "+string(in.Kind))
	}
	return row, nil
}

// Update applies a partial patch and always stamps updated_at. Zero matched
// rows means not found under the current scope.
func (r *queries) Update(
	ctx context.Context,
	tn tenancy.Context,
	kind domain.Kind,
	id string,
	patch domain.UpdateInput,
) (domain.List, error) {
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sets := []string{"updated_at = now()"}
	if patch.Name != nil {
		sets = append(sets, "name = "+arg(*patch.Name))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+arg(*patch.Description))
	}
	if patch.Filters != nil {
		raw, err := json.Marshal(patch.Filters)
		if err != nil {
			return domain.List{}, perr.Wrap(err, perr.ErrorCodeValidation, "encode filters")
		}
		sets = append(sets, "filters = "+arg(raw)+"::jsonb")
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+arg(*patch.Status))
	}

	var sb strings.Builder
	sb.WriteString("UPDATE lists SET " + strings.Join(sets, ", ") + "\n")
	sb.WriteString("WHERE id = " + arg(id) + "::uuid AND list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}
	sb.WriteString("RETURNING" + listColumns)

	row, err := store.One(ctx, r.q, scanList, sb.String(), args...)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.List{}, perr.NotFoundf("%s not found", kind)
		}
		return domain.List{}, perr.FromPostgresWithField(err, "update "+string(kind))
	}
	return row, nil
}

// SoftDelete sets deleted_at. Deleting an absent or already-deleted row is
// the same not-found; a second delete is not a silent success.
func (r *queries) SoftDelete(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) error {
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	var sb strings.Builder
	sb.WriteString("UPDATE lists SET deleted_at = now(), updated_at = now()\n")
	sb.WriteString("WHERE id = " + arg(id) + "::uuid AND list_type = " + arg(string(kind)) + " AND deleted_at IS NULL\n")
	if tn.Scoped() {
		sb.WriteString("  AND customer_id = " + arg(tn.CustomerID) + "\n")
	}

	tag, err := r.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return perr.FromPostgres(err, "delete "+string(kind))
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("%s not found", kind)
	}
	return nil
}
