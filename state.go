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

import "errors"

// solverState holds everything a VersionSolver mutates across a single
// Solve call: the partial solution trail, the incompatibility index,
// and the unit-propagation queue.
type solverState struct {
	source            Source
	options           SolverOptions
	partial           *partialSolution
	incompatibilities map[Package][]*Incompatibility
	learned           []*Incompatibility
	queue             []Package
	queued            map[Package]bool
}

func newSolverState(source Source, options SolverOptions) *solverState {
	return &solverState{
		source:            source,
		options:           options,
		partial:           newPartialSolution(),
		incompatibilities: make(map[Package][]*Incompatibility),
		learned:           make([]*Incompatibility, 0),
	}
}

func (st *solverState) enqueue(pkg Package) {
	if st.queued == nil {
		st.queued = make(map[Package]bool)
	}
	if st.queued[pkg] {
		return
	}
	st.queue = append(st.queue, pkg)
	st.queued[pkg] = true
}

func (st *solverState) dequeue() (Package, bool) {
	if len(st.queue) == 0 {
		return Package{}, false
	}
	pkg := st.queue[0]
	st.queue = st.queue[1:]
	delete(st.queued, pkg)
	return pkg, true
}

// addIncompatibility registers inc against every package it mentions,
// and records it for reporting when tracking is enabled.
func (st *solverState) addIncompatibility(inc *Incompatibility) {
	for _, term := range inc.Terms {
		pkg := term.Package()
		st.incompatibilities[pkg] = append(st.incompatibilities[pkg], inc)
	}
	if st.options.TrackIncompatibilities {
		st.learned = append(st.learned, inc)
	}
}

func (st *solverState) debug(msg string, args ...any) {
	if st.options.Logger == nil {
		return
	}
	st.options.Logger.Debug(msg, args...)
}

func (st *solverState) traceAssignment(event string, a *assignment) {
	if st.options.Logger == nil || a == nil {
		return
	}
	st.options.Logger.Debug("assignment", "event", event, "package", a.pkg.Value(), "detail", a.describe())
}

// incompatibilityRelation describes how an incompatibility relates to
// the current partial solution, per spec.md §4.6.1.
type incompatibilityRelation int

const (
	relationSatisfied       incompatibilityRelation = iota // every term true -> conflict
	relationAlmostSatisfied                                // exactly one term open -> unit propagation
	relationContradicted                                   // one term already false -> inapplicable
	relationInconclusive                                   // more than one term open -> wait
)

// evaluateIncompatibility classifies inc against the partial solution.
func (st *solverState) evaluateIncompatibility(inc *Incompatibility) (incompatibilityRelation, *Term, error) {
	var unsatisfied *Term

	for _, term := range inc.Terms {
		switch st.partial.relationFor(term) {
		case relDisjoint:
			return relationContradicted, nil, nil
		case relSubset:
			continue
		default: // overlapping: term's truth is still open
			if unsatisfied != nil {
				return relationInconclusive, nil, nil
			}
			t := term
			unsatisfied = &t
		}
	}

	if unsatisfied == nil {
		return relationSatisfied, nil, nil
	}
	return relationAlmostSatisfied, unsatisfied, nil
}

// propagate performs unit propagation starting from start (the zero
// Package{} meaning "just drain the queue"), per spec.md §4.6.1.
func (st *solverState) propagate(start Package) (*Incompatibility, error) {
	if start != (Package{}) {
		st.enqueue(start)
	}

	for {
		pkg, ok := st.dequeue()
		if !ok {
			return nil, nil
		}

		for _, inc := range st.incompatibilities[pkg] {
			relation, unsatisfied, err := st.evaluateIncompatibility(inc)
			if err != nil {
				return nil, err
			}

			switch relation {
			case relationSatisfied:
				st.debug("conflict detected during propagation", "package", pkg.Value(), "incompatibility", inc.String())
				return inc, nil
			case relationAlmostSatisfied:
				if unsatisfied == nil {
					continue
				}
				derived := unsatisfied.Negate()
				st.debug("unit propagation", "package", pkg.Value(), "incompatibility", inc.String(), "derived_term", derived.String())
				assign, changed, err := st.partial.addDerivation(derived, inc)
				if errors.Is(err, errNoAllowedVersions) {
					return inc, nil
				}
				if err != nil {
					return nil, err
				}
				if assign != nil {
					st.traceAssignment("derivation", assign)
				}
				if changed && assign != nil {
					st.enqueue(assign.pkg)
				}
			}
		}
	}
}

// resolveIncompatibility merges two incompatibilities during conflict
// resolution, eliminating the pivot package's own term from both sides
// and letting NewIncompatibility's normalization merge everything else,
// per spec.md §4.4/§4.6.3.
func resolveIncompatibility(conflict, cause *Incompatibility, pivot Package) *Incompatibility {
	terms := make([]Term, 0, len(conflict.Terms)+len(cause.Terms))
	for _, t := range conflict.Terms {
		if t.Package() != pivot {
			terms = append(terms, t)
		}
	}
	for _, t := range cause.Terms {
		if t.Package() != pivot {
			terms = append(terms, t)
		}
	}
	return NewIncompatibility(terms, conflict, cause)
}

// addDependencyIncompatibilities registers every incompatibility a
// Source attaches to pkg@version. It only indexes them; the main loop's
// subsequent propagate call is what actually derives their consequences
// (spec.md §4.6 makes decision and propagation separate sub-steps).
func (st *solverState) addDependencyIncompatibilities(incs []*Incompatibility) {
	for _, inc := range incs {
		st.addIncompatibility(inc)
	}
}

// pickVersion selects a version of pkg per the active decision
// heuristic, restricted to the partial solution's current cumulative
// range for pkg. Returns (nil, false, nil) if no candidate qualifies.
func (st *solverState) pickVersion(pkg Package) (Version, bool, error) {
	term := st.partial.cumulativeTerm(pkg)
	r := term.equivalentRange()
	if r.IsEmpty() {
		return nil, false, nil
	}

	versions, err := st.source.VersionsFor(NewConstraint(pkg, r))
	if err != nil {
		var pkgErr *PackageNotFoundError
		var verErr *PackageVersionNotFoundError
		if errors.As(err, &pkgErr) || errors.As(err, &verErr) {
			return nil, false, nil
		}
		return nil, false, err
	}

	candidates := make([]Version, 0, len(versions))
	for _, v := range versions {
		if r.Include(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, false, nil
	}

	heuristic := st.options.DecisionHeuristic
	if heuristic == nil {
		heuristic = PreferLatest
	}
	return heuristic(pkg, candidates), true, nil
}

// resolveConflict runs spec.md §4.6.3's conflict-driven clause learning
// loop: find the satisfier, decide whether to backjump or keep
// resolving with the satisfier's own cause.
func (st *solverState) resolveConflict(conflict *Incompatibility) (Package, error) {
	for {
		if conflict.IsFailure() {
			return Package{}, NewNoSolutionError(conflict)
		}

		satisfier := st.partial.satisfier(conflict)
		if satisfier == nil {
			return Package{}, &InternalError{Message: "no satisfier found for a term the partial solution claims to satisfy", Trail: st.partial.snapshot()}
		}

		prevLevel := st.partial.previousDecisionLevel(conflict, satisfier)
		st.debug("conflict analysis iteration",
			"conflict", conflict.String(),
			"satisfier", satisfier.describe(),
			"satisfier_level", satisfier.decisionLevel,
			"previous_level", prevLevel,
		)

		if satisfier.isDecision() || prevLevel < satisfier.decisionLevel {
			st.partial.backtrack(prevLevel)
			st.debug("backtracked after conflict", "pivot", satisfier.pkg.Value(), "target_level", prevLevel, "learned", conflict.String())
			st.addIncompatibility(conflict)
			return satisfier.pkg, nil
		}

		if satisfier.cause == nil {
			return Package{}, &InternalError{Message: "derived assignment missing cause", Trail: st.partial.snapshot()}
		}

		// spec.md §9 Open Question: the portion of the satisfier's own
		// term not needed to satisfy the conflict (its "difference")
		// must be folded back in via its inversion, or information is
		// lost and the learned clause can be too weak. Compute it
		// explicitly rather than silently dropping it.
		differenceTerm, hasDifference := satisfierDifference(conflict, satisfier)

		st.debug("resolving with cause", "pivot", satisfier.pkg.Value(), "cause", satisfier.cause.String())
		conflict = resolveIncompatibility(conflict, satisfier.cause, satisfier.pkg)
		if hasDifference {
			conflict = NewIncompatibility(append(conflict.Terms, differenceTerm.Negate()), conflict.Left, conflict.Right)
		}
		st.debug("derived new conflict", "pivot", satisfier.pkg.Value(), "conflict", conflict.String())
	}
}

// satisfierDifference computes the part of the satisfier's own
// assignment that was not strictly needed to satisfy conflict's term
// over the same package: satisfier.term minus conflict's term for that
// package. When non-empty, its negation must be folded into the next
// learned clause (see resolveConflict above and DESIGN.md) — otherwise
// the clause would claim more than the trail actually establishes,
// since the satisfier could just as well have picked something in that
// leftover difference instead.
func satisfierDifference(conflict *Incompatibility, satisfier *assignment) (Term, bool) {
	var conflictTerm Term
	found := false
	for _, t := range conflict.Terms {
		if t.Package() == satisfier.pkg {
			conflictTerm = t
			found = true
			break
		}
	}
	if !found {
		return Term{}, false
	}

	diff := satisfier.term.Difference(conflictTerm)
	if diff.IsUnsatisfiable() {
		return Term{}, false
	}
	return diff, true
}
