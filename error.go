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

import "fmt"

// RangeError signals a construction error in a VersionRange literal
// (e.g. a bounded Interval whose minimum exceeds its maximum). These are
// programmer errors and are panicked, never returned.
type RangeError struct {
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid version range: %s", e.Message)
}

// TermError signals a construction error combining Terms (Term.Intersect
// over two different packages), panicked for the same reason as
// RangeError.
type TermError struct {
	Message string
}

func (e *TermError) Error() string {
	return fmt.Sprintf("invalid term: %s", e.Message)
}

// InternalError signals that an invariant the solver relies on
// (spec.md §3.3/§3.8's I1–I5) was violated at runtime. Solve returns it
// (it is not panicked) with the offending partial-solution trail
// attached, since there is no sound way to keep solving once an internal
// invariant has broken.
type InternalError struct {
	Message string
	Trail   string
}

func (e *InternalError) Error() string {
	if e.Trail == "" {
		return fmt.Sprintf("internal solver error: %s", e.Message)
	}
	return fmt.Sprintf("internal solver error: %s (trail: %s)", e.Message, e.Trail)
}

// NoSolutionError is returned when version solving fails. It carries the
// failure incompatibility and renders it through a Reporter.
type NoSolutionError struct {
	Incompatibility *Incompatibility
	Reporter        Reporter
}

func (e *NoSolutionError) Error() string {
	if e.Incompatibility == nil {
		return "no solution found"
	}
	reporter := e.Reporter
	if reporter == nil {
		reporter = &DefaultReporter{}
	}
	return reporter.Report(e.Incompatibility)
}

// WithReporter returns a new error with a custom reporter.
func (e *NoSolutionError) WithReporter(reporter Reporter) *NoSolutionError {
	return &NoSolutionError{Incompatibility: e.Incompatibility, Reporter: reporter}
}

func (e *NoSolutionError) Unwrap() error { return nil }

// NewNoSolutionError creates a NoSolutionError from a failure incompatibility.
func NewNoSolutionError(incomp *Incompatibility) *NoSolutionError {
	return &NoSolutionError{Incompatibility: incomp, Reporter: &DefaultReporter{}}
}

// DependencyError represents an error while fetching a package version's
// dependencies from a Source.
type DependencyError struct {
	Package Package
	Version Version
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to get dependencies for %s %s: %v", e.Package.Value(), e.Version, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// PackageNotFoundError indicates that a package is absent from a Source.
type PackageNotFoundError struct {
	Package Package
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %s not found", e.Package.Value())
}

// PackageVersionNotFoundError indicates a specific version is unavailable.
type PackageVersionNotFoundError struct {
	Package Package
	Version Version
}

func (e *PackageVersionNotFoundError) Error() string {
	return fmt.Sprintf("package %s version %s not found", e.Package.Value(), e.Version)
}

// ErrIterationLimit is returned when the solver exceeds SolverOptions.MaxSteps.
type ErrIterationLimit struct {
	Steps int
}

func (e ErrIterationLimit) Error() string {
	if e.Steps <= 0 {
		return "solver exceeded iteration limit"
	}
	return fmt.Sprintf("solver exceeded iteration limit after %d steps", e.Steps)
}

var (
	_ error = (*RangeError)(nil)
	_ error = (*TermError)(nil)
	_ error = (*InternalError)(nil)
	_ error = (*NoSolutionError)(nil)
	_ error = (*DependencyError)(nil)
	_ error = (*PackageNotFoundError)(nil)
	_ error = (*PackageVersionNotFoundError)(nil)
	_ error = ErrIterationLimit{}
)
