package domain

// PageInput selects one catalog page
type PageInput struct {
	Page    int    `json:"page,omitempty" validate:"omitempty,min=1" example:"1"`
	PerPage int    `json:"per_page,omitempty" validate:"omitempty,min=1,max=100" example:"10"`
	Search  string `json:"search,omitempty" validate:"omitempty,max=200" example:"target accounts"`
}

// Defaults when PageInput fields are zero
const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Normalized returns in with defaults applied
func (in PageInput) Normalized() PageInput {
	if in.Page < 1 {
		in.Page = DefaultPage
	}
	if in.PerPage < 1 {
		in.PerPage = DefaultPerPage
	}
	return in
}

// PageMeta is the pagination block every catalog response carries.
// LastPage is ceil(total/perPage); Prev and Next are nil at the boundaries.
type PageMeta struct {
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PerPage  int  `json:"per_page"`
	LastPage int  `json:"last_page"`
	Prev     *int `json:"prev"`
	Next     *int `json:"next"`
}

// NewPageMeta computes the boundary laws for a page
func NewPageMeta(total, page, perPage int) PageMeta {
	last := (total + perPage - 1) / perPage
	if last < 1 {
		last = 1
	}
	m := PageMeta{Total: total, Page: page, PerPage: perPage, LastPage: last}
	if page > 1 {
		p := page - 1
		m.Prev = &p
	}
	if page < last {
		n := page + 1
		m.Next = &n
	}
	return m
}

// ListPage is one page of rows plus its meta
type ListPage struct {
	Data []List   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// CreateInput is the payload for creating a row of either kind.
// Filters are never part of creation; a fresh row always starts empty and
// callers set criteria via a follow-up update.
type CreateInput struct {
	Name        string  `json:"name" validate:"required" example:"Target Accounts"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Subtype     Subtype `json:"subtype" validate:"required,oneof=company people" example:"company"`
	IsStatic    bool    `json:"is_static" example:"true"`
}

// UpdateInput is a partial patch; nil fields are left untouched
type UpdateInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Filters     *Filters `json:"filters,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing
func (in UpdateInput) Empty() bool {
	return in.Name == nil && in.Description == nil && in.Filters == nil && in.Status == nil
}

// CopyResult reports what a duplication actually produced. The membership
// copy is best-effort: Truncated flags that a page fetch failed mid-way and
// only CopiedCount members made it across.
type CopyResult struct {
	List        List `json:"list"`
	CopiedCount int  `json:"copied_count"`
	Truncated   bool `json:"truncated"`
}
