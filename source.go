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

// Source is the embedder-supplied collaborator a VersionSolver queries
// for package metadata. The solver treats it as a pure function for the
// duration of a single Solve call: it is called synchronously, never
// concurrently, and its answers are assumed stable across repeated
// calls with the same arguments.
type Source interface {
	// VersionsFor returns every version of constraint.Package known to
	// the source, in ascending Sort order, regardless of whether they
	// satisfy constraint.Range — the solver does its own filtering, but
	// a source may use constraint.Range to narrow an expensive lookup.
	// Returns *PackageNotFoundError if the package itself is unknown.
	VersionsFor(constraint VersionConstraint) ([]Version, error)

	// IncompatibilitiesFor returns the incompatibilities implied by
	// pkg@version's declared dependencies — conventionally one
	// NewDependencyIncompatibility per dependency. Returns
	// *PackageVersionNotFoundError if that exact version is unknown.
	IncompatibilitiesFor(pkg Package, version Version) ([]*Incompatibility, error)

	// Root returns the distinguished package the solver should seed
	// its search from.
	Root() Package
}
