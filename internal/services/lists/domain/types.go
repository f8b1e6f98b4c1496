// Package domain defines the core types for lists and segments
package domain

import (
	"strings"
	"time"

	"audiencehub/internal/core/sizerange"
	perr "audiencehub/internal/platform/errors"
)

// Kind discriminates the two row flavors sharing the lists table. It is a
// hard filter on every query: segment operations can never touch list-typed
// rows and vice versa. Immutable after creation.
type Kind string

const (
	// KindList is an ad-hoc named collection
	KindList Kind = "list"

	// KindSegment is a filter-defined collection
	KindSegment Kind = "segment"
)

// Valid reports whether k is a known kind
func (k Kind) Valid() bool { return k == KindList || k == KindSegment }

// Subtype governs which membership semantics apply; only company-subtype
// rows participate in the membership service.
type Subtype string

const (
	// SubtypeCompany holds company members
	SubtypeCompany Subtype = "company"

	// SubtypePeople holds people and rejects company membership writes
	SubtypePeople Subtype = "people"
)

// Valid reports whether s is a known subtype
func (s Subtype) Valid() bool { return s == SubtypeCompany || s == SubtypePeople }

// StatusNew marks a freshly created row for the out-of-scope async segment
// processor. This core only ever writes it, never polls it.
const StatusNew = "new"

// List is one row of the shared table, either kind.
type List struct {
	ID string `json:"id"`

	// CustomerID is empty only on admin-context reads of rows whose owner
	// column is null; every tenant-scoped write carries a concrete value
	CustomerID string `json:"customer_id,omitempty"`

	Kind        Kind    `json:"kind"`
	Subtype     Subtype `json:"subtype"`
	IsStatic    bool    `json:"is_static"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Filters     Filters `json:"filters"`
	Status      string  `json:"status"`
	CreatedBy   *string `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// MemberCount is computed per row on catalog pages, not persisted
	MemberCount int `json:"member_count"`
}

// Filters is the structured criteria a segment's membership derives from.
// This core passes it through untouched except for the employee range, which
// round-trips through the sizerange codec for picker display.
type Filters struct {
	Country       string   `json:"country,omitempty"`
	Region        string   `json:"region,omitempty"`
	EmployeeRange string   `json:"employee_range,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Technologies  []string `json:"technologies,omitempty"`
	PersonaIDs    []string `json:"persona_ids,omitempty"`
}

// Empty reports whether no criteria are set
func (f Filters) Empty() bool {
	return f.Country == "" && f.Region == "" && f.EmployeeRange == "" &&
		len(f.Categories) == 0 && len(f.Technologies) == 0 && len(f.PersonaIDs) == 0
}

// EmployeeBuckets expands the persisted employee range into the catalog
// buckets a picker should show selected
func (f Filters) EmployeeBuckets() []string {
	if f.EmployeeRange == "" {
		return nil
	}
	return sizerange.Split(f.EmployeeRange)
}

// SetEmployeeBuckets collapses a picker selection back into the single
// persisted range string
func (f *Filters) SetEmployeeBuckets(labels []string) {
	f.EmployeeRange = sizerange.Merge(labels)
}

// Name length bounds, enforced after trimming before any persistence
const (
	NameMinLen = 3
	NameMaxLen = 100
)

// ValidateName checks the trimmed length bounds and returns the trimmed name
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < NameMinLen {
		return "", perr.WithField(
			perr.Validationf("name must be at least %d characters", NameMinLen), "name")
	}
	if len([]rune(trimmed)) > NameMaxLen {
		return "", perr.WithField(
			perr.Validationf("name must be at most %d characters", NameMaxLen), "name")
	}
	return trimmed, nil
}
