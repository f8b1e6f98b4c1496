// Package http provides http transport for lists and segments
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"audiencehub/internal/modkit/httpkit"
	pnet "audiencehub/internal/platform/net"

	listsdom "audiencehub/internal/services/lists/domain"
	memdom "audiencehub/internal/services/membership/domain"
	tenancydom "audiencehub/internal/services/tenancy/domain"
)

// Register mounts the endpoints for one kind under the module prefix.
// List-kind rows additionally expose duplication and direct membership
// editing; segment-kind rows only expose member removal.
func Register(
	r httpkit.Router,
	kind listsdom.Kind,
	lists listsdom.ServicePort,
	members memdom.ServicePort,
	tenants tenancydom.ServicePort,
) {
	h := &handlers{kind: kind, lists: lists, members: members, tenants: tenants}

	httpkit.PostJSON[listsdom.PageInput](r, "/search", h.search)
	httpkit.PostJSON[listsdom.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PatchJSON[listsdom.UpdateInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.remove)
	httpkit.Delete(r, "/{id}/companies/{companyID}", h.removeMember)

	if kind == listsdom.KindList {
		httpkit.Post(r, "/{id}/duplicate", h.duplicate)
		httpkit.PostJSON[memdom.CompanyIDsInput](r, "/{id}/companies", h.addMembers)
		httpkit.PostJSON[memdom.CompanyIDsInput](r, "/{id}/companies/check", h.checkMembers)
	}
}

type handlers struct {
	kind    listsdom.Kind
	lists   listsdom.ServicePort
	members memdom.ServicePort
	tenants tenancydom.ServicePort
}

// caller resolves the tenant scope for this request from the authenticated
// user and the optional tenant claim the auth layer stashed in context
func (h *handlers) caller(r *stdhttp.Request) (tenancydom.Context, string, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return tenancydom.Context{}, "", err
	}
	tn, err := h.tenants.Resolve(r.Context(), tenancydom.Session{
		UserID:      uid,
		TenantClaim: pnet.TenantID(r.Context()),
	})
	if err != nil {
		return tenancydom.Context{}, "", err
	}
	return tn, uid, nil
}

// @Summary Search lists or segments
// @Tags lists
// @Accept json
// @Produce json
// @Param payload body listsdom.PageInput true "Page selector"
// @Success 200 {object} listsdom.ListPage "ok"
// @Router /lists/search [post]
func (h *handlers) search(r *stdhttp.Request, in listsdom.PageInput) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	return h.lists.List(r.Context(), tn, h.kind, in)
}

// @Summary Create a list or segment
// @Tags lists
// @Accept json
// @Produce json
// @Param payload body listsdom.CreateInput true "Definition"
// @Success 201 {object} listsdom.List "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /lists [post]
func (h *handlers) create(r *stdhttp.Request, in listsdom.CreateInput) (any, error) {
	tn, uid, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	row, err := h.lists.Create(r.Context(), tn, uid, h.kind, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(row), nil
}

// @Summary Fetch one list or segment
// @Tags lists
// @Produce json
// @Success 200 {object} listsdom.List "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	return h.lists.Get(r.Context(), tn, h.kind, chi.URLParam(r, "id"))
}

// @Summary Patch a list or segment
// @Tags lists
// @Accept json
// @Produce json
// @Param payload body listsdom.UpdateInput true "Partial patch"
// @Success 200 {object} listsdom.List "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in listsdom.UpdateInput) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	return h.lists.Update(r.Context(), tn, h.kind, chi.URLParam(r, "id"), in)
}

// @Summary Soft-delete a list or segment
// @Tags lists
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	if err := h.lists.SoftDelete(r.Context(), tn, h.kind, chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Duplicate a list with its filters and static membership
// @Tags lists
// @Produce json
// @Success 200 {object} listsdom.CopyResult "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id}/duplicate [post]
func (h *handlers) duplicate(r *stdhttp.Request) (any, error) {
	tn, uid, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	return h.lists.Duplicate(r.Context(), tn, uid, chi.URLParam(r, "id"))
}

// @Summary Add companies to a static list
// @Tags membership
// @Accept json
// @Param payload body memdom.CompanyIDsInput true "Company ids"
// @Success 204 "added"
// @Failure 422 {object} httpkit.Envelope "unsupported subtype"
// @Router /lists/{id}/companies [post]
func (h *handlers) addMembers(r *stdhttp.Request, in memdom.CompanyIDsInput) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	if err := h.members.AddMembers(r.Context(), tn, chi.URLParam(r, "id"), in.CompanyIDs); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Check which companies are members
// @Tags membership
// @Accept json
// @Produce json
// @Param payload body memdom.CompanyIDsInput true "Company ids"
// @Success 200 {object} map[string]bool "ok"
// @Router /lists/{id}/companies/check [post]
func (h *handlers) checkMembers(r *stdhttp.Request, in memdom.CompanyIDsInput) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	return h.members.Check(r.Context(), tn, chi.URLParam(r, "id"), in.CompanyIDs)
}

// @Summary Remove one company from a list or segment
// @Tags membership
// @Success 204 "removed"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /lists/{id}/companies/{companyID} [delete]
func (h *handlers) removeMember(r *stdhttp.Request) (any, error) {
	tn, _, err := h.caller(r)
	if err != nil {
		return nil, err
	}
	id, companyID := chi.URLParam(r, "id"), chi.URLParam(r, "companyID")

	if h.kind == listsdom.KindSegment {
		err = h.members.RemoveFromSegment(r.Context(), tn, id, companyID)
	} else {
		err = h.members.Remove(r.Context(), tn, id, companyID)
	}
	if err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
