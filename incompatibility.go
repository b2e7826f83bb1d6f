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

import (
	"fmt"
	"strings"
)

// CauseKind tags why an Incompatibility exists.
type CauseKind int

const (
	// CauseDependency marks an incompatibility derived from a package
	// version's declared dependency.
	CauseDependency CauseKind = iota
	// CauseConflict marks an incompatibility learned by resolving two
	// other incompatibilities during conflict resolution.
	CauseConflict
)

// Incompatibility is a disjunction of negated terms: "not all of these
// terms can hold simultaneously". Terms is kept normalized per
// spec.md §4.4: at most one term per package, merged via intersection
// when two terms over the same package would otherwise coexist.
type Incompatibility struct {
	Terms []Term
	Cause CauseKind

	// DependencyPackage/DependencyVersion are set when Cause == CauseDependency.
	DependencyPackage Package
	DependencyVersion Version

	// Left and Right are the two incompatibilities this one was derived
	// from, set when Cause == CauseConflict.
	Left  *Incompatibility
	Right *Incompatibility
}

// NewNoVersionsIncompatibility builds the incompatibility meaning "no
// version of constraint.Package satisfies constraint": a single
// positive term over that constraint.
func NewNoVersionsIncompatibility(constraint VersionConstraint) *Incompatibility {
	return &Incompatibility{Terms: []Term{NewTerm(constraint)}, Cause: CauseDependency, DependencyPackage: constraint.Package}
}

// NewDependencyIncompatibility builds "pkg@version depends on dep":
// {pkg = version, not dep}.
func NewDependencyIncompatibility(pkg Package, version Version, dep Term) *Incompatibility {
	terms := normalizeTerms([]Term{
		NewTerm(NewConstraint(pkg, Singleton(version))),
		dep.Negate(),
	})
	return &Incompatibility{
		Terms:             terms,
		Cause:             CauseDependency,
		DependencyPackage: pkg,
		DependencyVersion: version,
	}
}

// NewIncompatibility builds a learned incompatibility from an arbitrary
// term list, normalizing it per spec.md §4.4 and collapsing to the
// canonical failure incompatibility when nothing survives.
func NewIncompatibility(terms []Term, left, right *Incompatibility) *Incompatibility {
	normalized := normalizeTerms(terms)
	if len(normalized) == 0 {
		return FailureIncompatibility()
	}
	return &Incompatibility{Terms: normalized, Cause: CauseConflict, Left: left, Right: right}
}

// FailureIncompatibility is the canonical value denoting "solving has
// failed with no further explanation": spec.md §3.7/§4.4 identify this
// with the empty term list, but construction always materializes it as
// a single positive term over Root, never a bare empty slice.
func FailureIncompatibility() *Incompatibility {
	return &Incompatibility{Terms: []Term{NewTerm(NewConstraint(Root, Any()))}, Cause: CauseConflict}
}

// IsFailure reports whether inc is a failure incompatibility: a single
// positive term over Root (FailureIncompatibility's Any range, or the
// root's own version that conflict resolution leaves behind).
func (inc *Incompatibility) IsFailure() bool {
	if len(inc.Terms) != 1 {
		return false
	}
	t := inc.Terms[0]
	return t.Positive && t.Package() == Root
}

// normalizeTerms merges terms over the same package (intersecting their
// equivalent ranges, per spec.md §4.4). A merged term that becomes
// universally true (equivalentRange == Any) is dropped, since it can
// never be the cause of a unit propagation. A merged term that becomes
// impossible (equivalentRange == Empty, a positive term no version can
// ever satisfy) makes the whole incompatibility trivially true, so
// normalizeTerms short-circuits to the empty list, which NewIncompatibility
// collapses to the canonical failure incompatibility.
func normalizeTerms(terms []Term) []Term {
	byPackage := make(map[Package]Term)
	order := make([]Package, 0, len(terms))

	for _, t := range terms {
		pkg := t.Package()
		if existing, ok := byPackage[pkg]; ok {
			merged := termFromRange(pkg, existing.equivalentRange().Intersect(t.equivalentRange()))
			byPackage[pkg] = merged
			continue
		}
		byPackage[pkg] = t
		order = append(order, pkg)
	}

	result := make([]Term, 0, len(order))
	for _, pkg := range order {
		t := byPackage[pkg]
		r := t.equivalentRange()
		if r.IsEmpty() {
			return nil
		}
		if r.IsAny() {
			continue
		}
		result = append(result, t)
	}
	return result
}

// String renders the incompatibility the way spec.md §6 prescribes.
func (inc *Incompatibility) String() string {
	if inc.IsFailure() {
		return "version solving failed"
	}
	if len(inc.Terms) == 0 {
		return "version solving failed"
	}

	if len(inc.Terms) == 1 {
		return fmt.Sprintf("%s is forbidden", inc.Terms[0])
	}

	if inc.Cause == CauseDependency && len(inc.Terms) == 2 {
		var dep Term
		for _, t := range inc.Terms {
			if t.Package() != inc.DependencyPackage {
				dep = t
				break
			}
		}
		if !dep.Positive {
			dep = dep.Negate()
		}
		return fmt.Sprintf("%s %s depends on %s", inc.DependencyPackage.Value(), inc.DependencyVersion, dep)
	}

	parts := make([]string, len(inc.Terms))
	for i, t := range inc.Terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s are incompatible", strings.Join(parts, " and "))
}
