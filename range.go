// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pubgrub

import "slices"

// rangeKind tags the three VersionRange variants. VersionRange is modelled
// as a tagged union rather than an interface hierarchy so that every
// operation below is a total pattern match instead of a method override.
type rangeKind int

const (
	rangeEmpty rangeKind = iota
	rangeInterval
	rangeUnion
)

// VersionRange is a predicate on Version: Empty (matches nothing),
// Interval (a half-open/closed interval with optional endpoints), or
// Union (a sorted, flattened, pairwise-disjoint sequence of intervals).
// The zero value is Empty.
type VersionRange struct {
	kind     rangeKind
	lower    versionBound // valid when kind == rangeInterval
	upper    versionBound // valid when kind == rangeInterval
	children []VersionRange // valid when kind == rangeUnion; each is rangeInterval
}

// Empty is the unique range that contains no version.
func Empty() VersionRange {
	return VersionRange{kind: rangeEmpty}
}

// Any is the range containing every version.
func Any() VersionRange {
	return VersionRange{kind: rangeInterval, lower: negativeInfinityBound(), upper: positiveInfinityBound()}
}

// Singleton returns the range containing exactly one version.
func Singleton(v Version) VersionRange {
	return Interval(v, true, v, true)
}

// AtLeast returns the range [v, +inf) (v, +inf) depending on inclusive.
func AtLeast(v Version, inclusive bool) VersionRange {
	return Interval(v, inclusive, nil, false)
}

// Before returns the range (-inf, v] or (-inf, v) depending on inclusive.
func Before(v Version, inclusive bool) VersionRange {
	return Interval(nil, false, v, inclusive)
}

// Interval builds a half-open/closed interval range. A nil min or max
// denotes an unbounded end. It is a construction error (I1) for a bounded
// interval to have min > max, or min == max with either endpoint
// exclusive; Interval panics with *RangeError in that case. A bounded,
// empty-by-crossing interval (e.g. min > max) is also rejected this way
// rather than silently returning Empty, matching spec.md §7's
// "construction error... surface immediately" rule; callers that want
// Empty for a computed (non-literal) interval should use the algebra
// (Intersect, Invert, etc.) instead of Interval directly.
func Interval(min Version, includeMin bool, max Version, includeMax bool) VersionRange {
	lower := newLowerBound(min, includeMin)
	upper := newUpperBound(max, includeMax)

	if min != nil && max != nil {
		cmp := min.Sort(max)
		if cmp > 0 {
			panic(&RangeError{Message: "interval minimum is greater than maximum"})
		}
		if cmp == 0 && (!includeMin || !includeMax) {
			panic(&RangeError{Message: "point interval must include both endpoints"})
		}
	}

	iv, ok := newBoundedInterval(lower, upper)
	if !ok {
		return Empty()
	}
	return VersionRange{kind: rangeInterval, lower: iv.lower, upper: iv.upper}
}

// newRangeFromIntervals builds the canonical form described in spec.md
// §4.2: flatten, drop empties, sort by lower bound, merge touching
// intervals, then collapse a singleton result to a bare Interval (or
// Empty if nothing survives).
func newRangeFromIntervals(intervals []versionInterval) VersionRange {
	normalized := normalizeIntervals(intervals)
	switch len(normalized) {
	case 0:
		return Empty()
	case 1:
		return VersionRange{kind: rangeInterval, lower: normalized[0].lower, upper: normalized[0].upper}
	default:
		children := make([]VersionRange, len(normalized))
		for i, iv := range normalized {
			children[i] = VersionRange{kind: rangeInterval, lower: iv.lower, upper: iv.upper}
		}
		return VersionRange{kind: rangeUnion, children: children}
	}
}

// flattenToIntervals collects the leaf intervals of r, whatever its kind.
func (r VersionRange) flattenToIntervals() []versionInterval {
	switch r.kind {
	case rangeEmpty:
		return nil
	case rangeInterval:
		return []versionInterval{{lower: r.lower, upper: r.upper}}
	case rangeUnion:
		out := make([]versionInterval, 0, len(r.children))
		for _, c := range r.children {
			out = append(out, c.flattenToIntervals()...)
		}
		return out
	default:
		return nil
	}
}

// IsEmpty reports whether r is the Empty range.
func (r VersionRange) IsEmpty() bool {
	return r.kind == rangeEmpty
}

// IsAny reports whether r is equivalent to Any().
func (r VersionRange) IsAny() bool {
	return r.kind == rangeInterval && r.lower.isNegInfinity() && r.upper.isPosInfinity()
}

// Include reports whether v lies within r.
func (r VersionRange) Include(v Version) bool {
	switch r.kind {
	case rangeEmpty:
		return false
	case rangeInterval:
		return versionInterval{lower: r.lower, upper: r.upper}.contains(v)
	case rangeUnion:
		for _, c := range r.children {
			if c.Include(v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Intersects reports whether r and other share at least one version.
func (r VersionRange) Intersects(other VersionRange) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	for _, a := range r.flattenToIntervals() {
		for _, b := range other.flattenToIntervals() {
			if a.overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Intersect computes the greatest lower bound of r and other in the range
// lattice (spec.md §4.1). Distributes over Union on either side.
func (r VersionRange) Intersect(other VersionRange) VersionRange {
	if r.IsEmpty() || other.IsEmpty() {
		return Empty()
	}

	as := r.flattenToIntervals()
	bs := other.flattenToIntervals()
	result := make([]versionInterval, 0, len(as)*len(bs))
	for _, a := range as {
		for _, b := range bs {
			lower := maxBound(a.lower, b.lower, compareLower)
			upper := minBound(a.upper, b.upper, compareUpper)
			if iv, ok := newBoundedInterval(lower, upper); ok {
				result = append(result, iv)
			}
		}
	}
	return newRangeFromIntervals(result)
}

// Union computes the lattice join of r and other (spec.md §4.2): nested
// Unions are always flattened, never nested.
func (r VersionRange) Union(other VersionRange) VersionRange {
	intervals := append(r.flattenToIntervals(), other.flattenToIntervals()...)
	return newRangeFromIntervals(intervals)
}

// Invert returns the complement of r over the whole version line.
// Empty inverts to Any, Any inverts to Empty. A bounded Interval inverts
// to the Union of the two open/closed half-lines outside it. A Union
// inverts via De Morgan: the intersection of its members' inversions.
func (r VersionRange) Invert() VersionRange {
	switch r.kind {
	case rangeEmpty:
		return Any()
	case rangeInterval:
		iv := versionInterval{lower: r.lower, upper: r.upper}
		var parts []versionInterval
		if below, ok := newBoundedInterval(negativeInfinityBound(), iv.complementUpperBound()); ok {
			parts = append(parts, below)
		}
		if above, ok := newBoundedInterval(iv.complementLowerBound(), positiveInfinityBound()); ok {
			parts = append(parts, above)
		}
		return newRangeFromIntervals(parts)
	case rangeUnion:
		result := Any()
		for _, c := range r.children {
			result = result.Intersect(c.Invert())
		}
		return result
	default:
		return Empty()
	}
}

// Equal reports whether r and other describe the same set of versions.
// Ranges are in canonical form (§4.2), so this is a structural comparison
// of the sorted, merged interval lists.
func (r VersionRange) Equal(other VersionRange) bool {
	a := r.flattenToIntervals()
	b := other.flattenToIntervals()
	a = normalizeIntervals(a)
	b = normalizeIntervals(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if compareLower(a[i].lower, b[i].lower) != 0 || compareUpper(a[i].upper, b[i].upper) != 0 {
			return false
		}
	}
	return true
}

// String renders r using the textual range syntax ParseVersionRange
// accepts, so that round-tripping through String/ParseVersionRange is
// lossless for any canonical range.
func (r VersionRange) String() string {
	return renderRange(r)
}

// singleVersion returns the one version a range matches, if it is a
// point range (min == max, both inclusive).
func (r VersionRange) singleVersion() (Version, bool) {
	if r.kind != rangeInterval {
		return nil, false
	}
	if !r.lower.isFinite() || !r.upper.isFinite() {
		return nil, false
	}
	if !r.lower.inclusive || !r.upper.inclusive {
		return nil, false
	}
	if r.lower.version.Sort(r.upper.version) != 0 {
		return nil, false
	}
	return r.lower.version, true
}

func maxBound(a, b versionBound, compare func(versionBound, versionBound) int) versionBound {
	if compare(a, b) >= 0 {
		return a
	}
	return b
}

func minBound(a, b versionBound, compare func(versionBound, versionBound) int) versionBound {
	if compare(a, b) <= 0 {
		return a
	}
	return b
}

// sortedCopy returns a defensively copied, sorted slice of intervals.
// Retained for call sites that must not mutate their input.
func sortedCopy(intervals []versionInterval) []versionInterval {
	out := slices.Clone(intervals)
	insertionSortIntervals(out)
	return out
}
