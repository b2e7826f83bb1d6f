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

import "log/slog"

// DecisionHeuristic picks which of the candidate versions of pkg the
// solver should try next. candidates is already filtered to the
// partial solution's current allowed range and is never empty.
// Spec.md §4.6.2 leaves this pluggable; it only mandates that some
// version be chosen deterministically for a given candidate list.
type DecisionHeuristic func(pkg Package, candidates []Version) Version

// PreferLatest is the default DecisionHeuristic: it assumes candidates
// are supplied in ascending order (as Source.VersionsFor must return
// them) and picks the last one.
func PreferLatest(_ Package, candidates []Version) Version {
	return candidates[len(candidates)-1]
}

// PreferOldest always picks the first candidate, useful for
// reproducing minimal-version-selection behavior in tests.
func PreferOldest(_ Package, candidates []Version) Version {
	return candidates[0]
}

// SolverOptions configures a VersionSolver.
type SolverOptions struct {
	// TrackIncompatibilities enables collecting learned clauses for
	// detailed NoSolutionError reporting.
	TrackIncompatibilities bool

	// MaxSteps bounds the main loop's iteration count. 0 disables the
	// limit.
	MaxSteps int

	// Logger receives structured debug events during solving. Nil
	// disables logging.
	Logger *slog.Logger

	// DecisionHeuristic chooses among candidate versions at decision
	// time. Nil selects PreferLatest.
	DecisionHeuristic DecisionHeuristic
}

// SolverOption is a functional option for configuring a VersionSolver.
type SolverOption func(*SolverOptions)

const defaultMaxSteps = 100000

func defaultSolverOptions() SolverOptions {
	return SolverOptions{
		TrackIncompatibilities: false,
		MaxSteps:               defaultMaxSteps,
		DecisionHeuristic:      PreferLatest,
	}
}

// WithIncompatibilityTracking enables or disables collecting learned
// clauses for detailed error reporting.
func WithIncompatibilityTracking(enabled bool) SolverOption {
	return func(opts *SolverOptions) {
		opts.TrackIncompatibilities = enabled
	}
}

// WithMaxSteps sets the solver's iteration cap. 0 disables it.
func WithMaxSteps(steps int) SolverOption {
	return func(opts *SolverOptions) {
		if steps <= 0 {
			opts.MaxSteps = 0
		} else {
			opts.MaxSteps = steps
		}
	}
}

// WithLogger sets the structured logger used for solver diagnostics.
func WithLogger(logger *slog.Logger) SolverOption {
	return func(opts *SolverOptions) {
		opts.Logger = logger
	}
}

// WithDecisionHeuristic overrides the default version-choice heuristic.
func WithDecisionHeuristic(h DecisionHeuristic) SolverOption {
	return func(opts *SolverOptions) {
		if h != nil {
			opts.DecisionHeuristic = h
		}
	}
}
