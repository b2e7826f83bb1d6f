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

// VersionSolver implements PubGrub's conflict-driven clause learning
// loop over a Source.
//
// Basic usage:
//
//	source := NewInMemorySource()
//	// ... populate source ...
//	solver := NewVersionSolver(source)
//	solution, err := solver.Solve()
//
// With options:
//
//	solver := NewVersionSolver(source,
//	    WithIncompatibilityTracking(true),
//	    WithMaxSteps(10000),
//	)
type VersionSolver struct {
	source  Source
	options SolverOptions
	learned []*Incompatibility
}

// NewVersionSolver creates a VersionSolver over source.
func NewVersionSolver(source Source, opts ...SolverOption) *VersionSolver {
	options := defaultSolverOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &VersionSolver{source: source, options: options}
}

// Incompatibilities returns the incompatibilities learned during the
// most recent Solve call, if TrackIncompatibilities was enabled.
func (s *VersionSolver) Incompatibilities() []*Incompatibility {
	return s.learned
}

func (s *VersionSolver) debug(msg string, args ...any) {
	if s.options.Logger != nil {
		s.options.Logger.Debug(msg, args...)
	}
}

// Solve runs the main loop described in spec.md §4.6: seed the root
// package, then alternate unit propagation and decision until either
// every reachable package has a decided version (success) or the root
// incompatibility itself becomes satisfied (failure).
func (s *VersionSolver) Solve() (Solution, error) {
	root := s.source.Root()
	s.debug("starting solver", "root", root.Value())

	state := newSolverState(s.source, s.options)

	seed := state.partial.seedRoot(root, rootVersion)
	state.traceAssignment("seed", seed)

	incs, err := s.source.IncompatibilitiesFor(root, rootVersion)
	if err != nil {
		return nil, &DependencyError{Package: root, Version: rootVersion, Err: err}
	}
	state.addDependencyIncompatibilities(incs)
	state.enqueue(root)

	var conflict *Incompatibility

	for steps := 0; ; steps++ {
		if s.options.MaxSteps > 0 && steps >= s.options.MaxSteps {
			return nil, ErrIterationLimit{Steps: s.options.MaxSteps}
		}

		if conflict != nil {
			s.debug("resolving conflict", "step", steps, "conflict", conflict.String())
			pivot, err := state.resolveConflict(conflict)
			if err != nil {
				if ns, ok := err.(*NoSolutionError); ok {
					return s.fail(state, ns.Incompatibility)
				}
				return nil, err
			}
			conflict = nil
			state.enqueue(pivot)
			continue
		}

		propConflict, err := state.propagate(Package{})
		if err != nil {
			return nil, err
		}
		if propConflict != nil {
			conflict = propConflict
			continue
		}

		if state.partial.isComplete() {
			s.learned = state.learned
			return state.partial.buildSolution(), nil
		}

		pkg, ok := state.partial.nextDecisionCandidate()
		if !ok {
			s.learned = state.learned
			return state.partial.buildSolution(), nil
		}

		version, found, err := state.pickVersion(pkg)
		if err != nil {
			return nil, err
		}
		if !found {
			r := state.partial.cumulativeTerm(pkg).equivalentRange()
			noVersions := NewNoVersionsIncompatibility(NewConstraint(pkg, r))
			state.addIncompatibility(noVersions)
			conflict = noVersions
			continue
		}

		s.debug("making decision", "step", steps, "package", pkg.Value(), "version", version)
		assign := state.partial.addDecisionAt(pkg, version)
		state.traceAssignment("decision", assign)

		incs, err := s.source.IncompatibilitiesFor(pkg, version)
		if err != nil {
			return nil, &DependencyError{Package: pkg, Version: version, Err: err}
		}
		state.addDependencyIncompatibilities(incs)
		state.enqueue(pkg)
	}
}

func (s *VersionSolver) fail(state *solverState, incomp *Incompatibility) (Solution, error) {
	if incomp == nil {
		incomp = FailureIncompatibility()
	}
	if state != nil && s.options.TrackIncompatibilities {
		s.learned = append([]*Incompatibility{}, state.learned...)
	}
	return nil, NewNoSolutionError(incomp)
}
