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
	"errors"
	"fmt"
	"strings"
)

// errNoAllowedVersions is returned internally by addDerivation when a
// derived term leaves its package with no possible version at all — the
// caller (propagate) then reports the incompatibility that forced the
// rejected derivation as the conflict.
var errNoAllowedVersions = errors.New("no allowed versions remain for package")

// partialSolution is the solver's trail of assignments, plus the
// per-package cumulative Term cache spec.md §3.8/I4 describes: at any
// point, cumulativeTerm(pkg) is the intersection (in the Term algebra)
// of every assignment so far touching pkg.
type partialSolution struct {
	trail         []*assignment
	cumulative    map[Package]Term
	decisionLevel int
	decisions     map[Package]Version
	nextIndex     int
}

func newPartialSolution() *partialSolution {
	return &partialSolution{
		cumulative: make(map[Package]Term),
		decisions:  make(map[Package]Version),
	}
}

// seedRoot places the single root decision at decision level 1 (level 0
// is "nothing decided yet"; addDecisionAt increments before recording).
func (ps *partialSolution) seedRoot(root Package, version Version) *assignment {
	return ps.addDecisionAt(root, version)
}

func (ps *partialSolution) cumulativeTerm(pkg Package) Term {
	if t, ok := ps.cumulative[pkg]; ok {
		return t
	}
	return NewTerm(NewConstraint(pkg, Any()))
}

func (ps *partialSolution) hasAssignments(pkg Package) bool {
	_, ok := ps.cumulative[pkg]
	return ok
}

// relationFor classifies term against the partial solution's current
// knowledge of its package, per spec.md §4.3/§4.6.1: subset means term
// is already guaranteed (satisfied), disjoint means term can never hold
// given what's assigned (contradicted), otherwise it's still open.
func (ps *partialSolution) relationFor(term Term) termRelation {
	cumulative := ps.cumulativeTerm(term.Package())
	return cumulative.Relation(term)
}

// addDecisionAt records a Decision for pkg = version, opening a new
// decision level.
func (ps *partialSolution) addDecisionAt(pkg Package, version Version) *assignment {
	ps.decisionLevel++
	a := newDecisionAssignment(pkg, version, ps.decisionLevel, ps.nextIndex)
	ps.nextIndex++
	ps.trail = append(ps.trail, a)
	ps.cumulative[pkg] = ps.cumulativeTerm(pkg).Intersect(a.term)
	ps.decisions[pkg] = version
	return a
}

// addDerivation records a Derivation of term caused by cause, at the
// current decision level. Returns the new assignment and whether the
// package's cumulative term changed; if the derivation would leave the
// package with no satisfiable version at all, returns
// errNoAllowedVersions instead of recording anything.
func (ps *partialSolution) addDerivation(term Term, cause *Incompatibility) (*assignment, bool, error) {
	before := ps.cumulativeTerm(term.Package())
	merged := before.Intersect(term)
	if merged.IsUnsatisfiable() {
		return nil, false, fmt.Errorf("%w: %s", errNoAllowedVersions, term.Package().Value())
	}

	a := newDerivationAssignment(term, cause, ps.decisionLevel, ps.nextIndex)
	ps.nextIndex++
	ps.trail = append(ps.trail, a)
	ps.cumulative[term.Package()] = merged

	changed := !merged.equivalentRange().Equal(before.equivalentRange())
	return a, changed, nil
}

// decidedPackages returns every package with a Decision on the trail.
func (ps *partialSolution) decidedPackages() []Package {
	out := make([]Package, 0, len(ps.decisions))
	for pkg := range ps.decisions {
		out = append(out, pkg)
	}
	return out
}

// undecidedPackages returns, in trail order, packages that some positive
// assignment requires (via a dependency or a learned clause) but that
// have no decided version yet. A package known only through negative
// derivations is not required and is not listed.
func (ps *partialSolution) undecidedPackages() []Package {
	var out []Package
	seen := make(map[Package]bool)
	for _, a := range ps.trail {
		if !a.term.Positive || seen[a.pkg] {
			continue
		}
		seen[a.pkg] = true
		if _, decided := ps.decisions[a.pkg]; !decided {
			out = append(out, a.pkg)
		}
	}
	return out
}

// isComplete reports whether every package the solution has touched has
// a decided version — the success condition of spec.md §4.6.
func (ps *partialSolution) isComplete() bool {
	return len(ps.undecidedPackages()) == 0
}

// nextDecisionCandidate returns an arbitrary undecided package, if any.
// The actual choice among candidates is delegated to the solver's
// decision heuristic (spec.md §4.6.2); this just reports who's eligible.
func (ps *partialSolution) nextDecisionCandidate() (Package, bool) {
	candidates := ps.undecidedPackages()
	if len(candidates) == 0 {
		return Package{}, false
	}
	return candidates[0], true
}

// satisfier finds the earliest assignment on the trail such that
// replaying the trail up to and including it makes every term of inc
// satisfied, per spec.md §4.6.3's satisfier search. It returns the
// assignment responsible for the *last* term to become satisfied.
func (ps *partialSolution) satisfier(inc *Incompatibility) *assignment {
	running := make(map[Package]Term)
	satisfiedTerm := make(map[Package]bool)
	unsatisfiedCount := len(inc.Terms)

	termForPkg := make(map[Package]Term, len(inc.Terms))
	for _, t := range inc.Terms {
		termForPkg[t.Package()] = t
	}

	for _, a := range ps.trail {
		t, relevant := termForPkg[a.pkg]
		if !relevant {
			continue
		}
		cur, ok := running[a.pkg]
		if !ok {
			cur = NewTerm(NewConstraint(a.pkg, Any()))
		}
		running[a.pkg] = cur.Intersect(a.term)

		if satisfiedTerm[a.pkg] {
			continue
		}
		if running[a.pkg].Relation(t) == relSubset {
			satisfiedTerm[a.pkg] = true
			unsatisfiedCount--
			if unsatisfiedCount == 0 {
				return a
			}
		}
	}
	return nil
}

// previousDecisionLevel computes the backjump target for a conflict once
// satisfier has identified the pivot assignment: the highest decision
// level among the assignments needed to satisfy every *other* term of
// inc. If no other term needed any assignment at all (inc has a single
// term, or every other term is satisfied by the empty trail), the
// default is 1: level 0 is "nothing decided yet" and seedRoot's own
// decision occupies level 1, so a backjump to the default keeps the root
// decision and its derivations on the trail. See DESIGN.md for why this
// resolves spec.md §9's Open Question about the "or 1 if none" default.
func (ps *partialSolution) previousDecisionLevel(inc *Incompatibility, satisfier *assignment) int {
	running := make(map[Package]Term)
	satisfiedTerm := make(map[Package]bool)

	termForPkg := make(map[Package]Term, len(inc.Terms))
	for _, t := range inc.Terms {
		termForPkg[t.Package()] = t
	}

	level := 1
	for _, a := range ps.trail {
		if a.index == satisfier.index {
			break
		}
		t, relevant := termForPkg[a.pkg]
		if !relevant {
			continue
		}
		cur, ok := running[a.pkg]
		if !ok {
			cur = NewTerm(NewConstraint(a.pkg, Any()))
		}
		running[a.pkg] = cur.Intersect(a.term)

		if satisfiedTerm[a.pkg] {
			continue
		}
		if running[a.pkg].Relation(t) == relSubset {
			satisfiedTerm[a.pkg] = true
			if a.decisionLevel > level {
				level = a.decisionLevel
			}
		}
	}
	return level
}

// backtrack discards every trail entry above targetLevel and recomputes
// the cumulative-term cache and decision map from the surviving prefix,
// per spec.md §4.5's backtrack operation.
func (ps *partialSolution) backtrack(targetLevel int) {
	keep := 0
	for _, a := range ps.trail {
		if a.decisionLevel > targetLevel {
			break
		}
		keep++
	}
	ps.trail = ps.trail[:keep]
	ps.decisionLevel = targetLevel

	ps.cumulative = make(map[Package]Term)
	ps.decisions = make(map[Package]Version)
	for _, a := range ps.trail {
		ps.cumulative[a.pkg] = ps.cumulativeTerm(a.pkg).Intersect(a.term)
		if a.isDecision() {
			ps.decisions[a.pkg] = a.version
		}
	}
}

// latest returns the most recent assignment recorded for pkg, if any.
func (ps *partialSolution) latest(pkg Package) *assignment {
	for i := len(ps.trail) - 1; i >= 0; i-- {
		if ps.trail[i].pkg == pkg {
			return ps.trail[i]
		}
	}
	return nil
}

// buildSolution materializes the decided packages into a Solution.
func (ps *partialSolution) buildSolution() Solution {
	sol := make(Solution, len(ps.decisions))
	for pkg, version := range ps.decisions {
		if pkg == Root {
			continue
		}
		sol[pkg] = version
	}
	return sol
}

// snapshot renders a short description of the trail, used as the Trail
// of the InternalError values resolveConflict returns.
func (ps *partialSolution) snapshot() string {
	parts := make([]string, len(ps.trail))
	for i, a := range ps.trail {
		parts[i] = a.describe()
	}
	return strings.Join(parts, " | ")
}
