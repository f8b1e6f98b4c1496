// Package service implements the list and segment operations
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"audiencehub/internal/core/normalize"
	"audiencehub/internal/modkit/repokit"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/platform/logger"
	"audiencehub/internal/services/lists/domain"
	"audiencehub/internal/services/lists/repo"

	tenancy "audiencehub/internal/services/tenancy/domain"
)

// Membership copy tuning. Fetch pages are bulk-sized; insert chunks are
// smaller to bound individual statement payloads.
const (
	copyFetchPage   = 500
	copyInsertChunk = 100
)

// copyNameFallback is used when the derived copy name is too short to persist
const copyNameFallback = "Copied list"

// UserDirectory maps the caller's auth id to the application user id
type UserDirectory interface {
	AppUserID(ctx context.Context, authUserID string) (string, error)
}

// Svc implements domain.ServicePort over the lists storage
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[repo.Storage]
	users   UserDirectory
	members domain.MembershipPort
}

var _ domain.ServicePort = (*Svc)(nil)

// New constructs the lists service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Storage],
	users UserDirectory,
	members domain.MembershipPort,
) *Svc {
	if db == nil {
		panic("lists service requires a db")
	}
	if binder == nil {
		panic("lists service requires a repo binder")
	}
	if users == nil {
		panic("lists service requires a user directory")
	}
	if members == nil {
		panic("lists service requires a membership port")
	}
	return &Svc{db: db, binder: binder, users: users, members: members}
}

// List returns one catalog page with per-row member counts. Counts are
// fetched one list at a time through the MemberCounter seam; a failed count
// logs and leaves that row at zero rather than failing the page.
func (s *Svc) List(
	ctx context.Context,
	tn tenancy.Context,
	kind domain.Kind,
	in domain.PageInput,
) (domain.ListPage, error) {
	if err := tn.RequireRead(); err != nil {
		return domain.ListPage{}, err
	}
	in = in.Normalized()
	search := normalize.Term(in.Search)

	r := s.binder.Bind(s.db)
	offset := (in.Page - 1) * in.PerPage
	rows, err := r.Page(ctx, tn, kind, search, in.PerPage, offset)
	if err != nil {
		return domain.ListPage{}, err
	}
	total, err := r.Count(ctx, tn, kind, search)
	if err != nil {
		return domain.ListPage{}, err
	}

	for i := range rows {
		n, err := s.members.CountMembers(ctx, tn, rows[i].ID)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("list_id", rows[i].ID).Msg("lists: member count failed")
			continue
		}
		rows[i].MemberCount = n
	}

	if rows == nil {
		rows = []domain.List{}
	}
	return domain.ListPage{
		Data: rows,
		Meta: domain.NewPageMeta(total, in.Page, in.PerPage),
	}, nil
}

// Get fetches one row by id under the current scope
func (s *Svc) Get(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) (domain.List, error) {
	if err := tn.RequireRead(); err != nil {
		return domain.List{}, err
	}
	return s.binder.Bind(s.db).Get(ctx, tn, kind, id)
}

// Create persists a new row. Filters always start empty and status starts at
// "new" for the async processor; created_by is the caller's application user.
func (s *Svc) Create(
	ctx context.Context,
	tn tenancy.Context,
	authUserID string,
	kind domain.Kind,
	in domain.CreateInput,
) (domain.List, error) {
	if err := tn.RequireWrite(); err != nil {
		return domain.List{}, err
	}
	if !kind.Valid() {
		return domain.List{}, perr.Validationf("unknown kind %q", kind)
	}
	if !in.Subtype.Valid() {
		return domain.List{}, perr.WithField(perr.Validationf("unknown subtype %q", in.Subtype), "subtype")
	}
	name, err := domain.ValidateName(in.Name)
	if err != nil {
		return domain.List{}, err
	}
	createdBy, err := s.users.AppUserID(ctx, authUserID)
	if err != nil {
		return domain.List{}, err
	}

	return s.binder.Bind(s.db).Insert(ctx, repo.InsertRow{
		ID:          uuid.NewString(),
		CustomerID:  tn.CustomerID,
		Kind:        kind,
		Subtype:     in.Subtype,
		IsStatic:    in.IsStatic,
		Name:        name,
		Description: in.Description,
		CreatedBy:   createdBy,
	})
}

// Update applies a partial patch, re-validating the name when present.
// Concurrent updates are last-writer-wins; there is no version token.
func (s *Svc) Update(
	ctx context.Context,
	tn tenancy.Context,
	kind domain.Kind,
	id string,
	in domain.UpdateInput,
) (domain.List, error) {
	if err := tn.RequireWrite(); err != nil {
		return domain.List{}, err
	}
	if in.Empty() {
		return domain.List{}, perr.Validationf("no fields to update")
	}
	if in.Name != nil {
		name, err := domain.ValidateName(*in.Name)
		if err != nil {
			return domain.List{}, err
		}
		in.Name = &name
	}
	return s.binder.Bind(s.db).Update(ctx, tn, kind, id, in)
}

// SoftDelete marks a row deleted. After this the row is gone from every
// listing, lookup, update, and membership operation.
func (s *Svc) SoftDelete(ctx context.Context, tn tenancy.Context, kind domain.Kind, id string) error {
	if err := tn.RequireWrite(); err != nil {
		return err
	}
	return s.binder.Bind(s.db).SoftDelete(ctx, tn, kind, id)
}

// Duplicate produces an independent copy of a list-typed row: same subtype,
// staticness, description, and filters, plus its static company membership.
// The definition copy is guaranteed; the membership copy is best-effort. A
// storage failure mid-pagination stops collecting, keeps what was gathered,
// and the operation still reports success with Truncated set.
func (s *Svc) Duplicate(
	ctx context.Context,
	tn tenancy.Context,
	authUserID, id string,
) (domain.CopyResult, error) {
	if err := tn.RequireWrite(); err != nil {
		return domain.CopyResult{}, err
	}

	r := s.binder.Bind(s.db)
	src, err := r.Get(ctx, tn, domain.KindList, id)
	if err != nil {
		return domain.CopyResult{}, err
	}
	createdBy, err := s.users.AppUserID(ctx, authUserID)
	if err != nil {
		return domain.CopyResult{}, err
	}

	// the definition copy (row plus filters) commits atomically
	var created domain.List
	txErr := s.db.Tx(ctx, func(q repokit.Queryer) error {
		tr := s.binder.Bind(q)
		var err error
		created, err = tr.Insert(ctx, repo.InsertRow{
			ID:          uuid.NewString(),
			CustomerID:  tn.CustomerID,
			Kind:        domain.KindList,
			Subtype:     src.Subtype,
			IsStatic:    src.IsStatic,
			Name:        copyName(src.Name),
			Description: src.Description,
			CreatedBy:   createdBy,
		})
		if err != nil {
			return err
		}
		if src.Filters.Empty() {
			return nil
		}
		created, err = tr.Update(ctx, tn, domain.KindList, created.ID, domain.UpdateInput{Filters: &src.Filters})
		return err
	})
	if txErr != nil {
		return domain.CopyResult{}, txErr
	}

	out := domain.CopyResult{List: created}
	if !src.IsStatic || src.Subtype != domain.SubtypeCompany {
		return out, nil
	}

	var collected []string
	for offset := 0; ; offset += copyFetchPage {
		page, err := s.members.MemberIDs(ctx, tn, src.ID, copyFetchPage, offset)
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("list_id", src.ID).Msg("lists: membership copy fetch failed, keeping partial copy")
			out.Truncated = true
			break
		}
		collected = append(collected, page...)
		if len(page) < copyFetchPage {
			break
		}
	}

	for start := 0; start < len(collected); start += copyInsertChunk {
		end := min(start+copyInsertChunk, len(collected))
		if err := s.members.AddMembers(ctx, tn, created.ID, collected[start:end]); err != nil {
			logger.C(ctx).Warn().Err(err).Str("list_id", created.ID).Msg("lists: membership copy insert failed, keeping partial copy")
			out.Truncated = true
			return out, nil
		}
		out.CopiedCount += end - start
	}
	return out, nil
}

// copyName derives the copy's name: a _copy suffix, clamped to the name
// ceiling with an ellipsis when needed
func copyName(src string) string {
	name := strings.TrimSpace(src) + "_copy"
	if r := []rune(name); len(r) > domain.NameMaxLen {
		name = string(r[:domain.NameMaxLen-1]) + "…"
	}
	if len([]rune(strings.TrimSpace(name))) < domain.NameMinLen {
		return copyNameFallback
	}
	return name
}
