// Package sizerange converts between the fixed catalog of company size
// buckets shown in pickers and the single merged range string persisted on a
// segment's filters.
//
// The merge/split pair is not a true inverse: merging a
// non-contiguous selection (say 1-10 plus 1001-5000) produces one contiguous
// range that swallows the gap. That is observed product behavior and is kept
// as is; see the package tests for the documented round trips.
package sizerange

import (
	"fmt"
	"strconv"
	"strings"
)

// Catalog is the ordered set of buckets offered by the UI.
// Order matters: endpoint removal rules index into this slice.
var Catalog = []string{
	"1-10 employees",
	"11-50 employees",
	"51-200 employees",
	"201-500 employees",
	"501-1000 employees",
	"1001-5000 employees",
	"5001-10,000 employees",
	"10,001+ employees",
}

// Bounds is a parsed bucket or merged range. Max == nil means unbounded.
type Bounds struct {
	Min int
	Max *int
}

// Unbounded reports whether the range has no upper end.
func (b Bounds) Unbounded() bool { return b.Max == nil }

// Parse extracts bounds from a bucket label or persisted range string.
// Accepts "A-B employees", "A+ employees", or a bare number, with optional
// thousands separators. Anything unparseable yields {0, nil}: callers treat
// that as "no constraint" rather than an error.
func Parse(label string) Bounds {
	s := strings.TrimSpace(label)
	s = strings.TrimSuffix(s, " employees")
	s = strings.ReplaceAll(s, ",", "")

	if n, cut := strings.CutSuffix(s, "+"); cut {
		if min, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return Bounds{Min: min}
		}
		return Bounds{}
	}

	if lo, hi, found := strings.Cut(s, "-"); found {
		min, errLo := strconv.Atoi(strings.TrimSpace(lo))
		max, errHi := strconv.Atoi(strings.TrimSpace(hi))
		if errLo != nil || errHi != nil {
			return Bounds{}
		}
		return Bounds{Min: min, Max: &max}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return Bounds{Min: n, Max: &n}
	}
	return Bounds{}
}

// Merge collapses one or more selected bucket labels into a single range
// string. A single selection is returned verbatim. Otherwise the result spans
// the minimum selected lower bound to either the maximum upper bound, or an
// open "N+" form when any selected bucket is unbounded. Buckets parsing to a
// zero lower bound are noise and excluded from the minimum.
func Merge(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}

	min := 0
	max := 0
	open := false
	for _, l := range labels {
		b := Parse(l)
		if b.Min > 0 && (min == 0 || b.Min < min) {
			min = b.Min
		}
		if b.Max == nil {
			open = true
		} else if *b.Max > max {
			max = *b.Max
		}
	}

	if open {
		return fmt.Sprintf("%s+ employees", group(min))
	}
	return fmt.Sprintf("%s-%s employees", group(min), group(max))
}

// Split recovers the catalog buckets covered by a previously persisted range
// string. Exact catalog labels come back as a singleton. "N+" selects every
// bucket with lower bound >= N. "N-M" selects every bucket fitting inside
// [N, M], and additionally the catalog's open-ended top bucket whenever its
// lower bound <= M. Unrecognized strings are preserved as a single opaque
// label so stored data is never discarded.
func Split(persisted string) []string {
	s := strings.TrimSpace(persisted)
	if s == "" {
		return nil
	}
	for _, c := range Catalog {
		if s == c {
			return []string{c}
		}
	}

	b := Parse(s)
	if b.Min == 0 {
		return []string{persisted}
	}

	var out []string
	if b.Unbounded() {
		for _, c := range Catalog {
			if Parse(c).Min >= b.Min {
				out = append(out, c)
			}
		}
	} else {
		for _, c := range Catalog {
			cb := Parse(c)
			if cb.Min < b.Min {
				continue
			}
			if cb.Max != nil && *cb.Max <= *b.Max {
				out = append(out, c)
			} else if cb.Max == nil && cb.Min <= *b.Max {
				// the open top bucket joins whenever the range reaches it
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		return []string{persisted}
	}
	return out
}

// EndpointRemovable reports whether bucket may be removed from the current
// selection on its own. With two or more buckets selected only the lowest and
// highest selected catalog entries are removable, since dropping an interior
// bucket would leave a non-contiguous range the merged string cannot express.
// A sole selection is always removable.
func EndpointRemovable(bucket string, selected []string) bool {
	if len(selected) <= 1 {
		return true
	}
	lo, hi := -1, -1
	for _, s := range selected {
		idx := catalogIndex(s)
		if idx < 0 {
			continue
		}
		if lo < 0 || idx < lo {
			lo = idx
		}
		if idx > hi {
			hi = idx
		}
	}
	idx := catalogIndex(bucket)
	return idx >= 0 && (idx == lo || idx == hi)
}

func catalogIndex(label string) int {
	for i, c := range Catalog {
		if c == label {
			return i
		}
	}
	return -1
}

// group renders n with thousands separators, the style merged ranges are
// persisted in ("1,001+ employees").
func group(n int) string {
	s := strconv.Itoa(n)
	if n < 1000 {
		return s
	}
	var sb strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		sb.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
