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

// InMemorySource is a Source backed entirely by in-memory maps, useful
// for tests, examples, and prototyping before wiring up a real registry.
//
// Example:
//
//	source := NewInMemorySource()
//	source.AddPackage(foo, SimpleVersion("1.0.0"), []Term{
//	    NewTerm(NewConstraint(bar, AtLeast(SimpleVersion("2.0.0"), true))),
//	})
//	source.AddPackage(bar, SimpleVersion("2.0.0"), nil)
//	source.AddRootDependency(NewTerm(NewConstraint(foo, Any())))
type InMemorySource struct {
	root     Package
	packages map[Package]map[Version][]Term
	rootDeps []Term
}

// NewInMemorySource creates an empty InMemorySource using the package
// Root as its root.
func NewInMemorySource() *InMemorySource {
	return &InMemorySource{
		root:     Root,
		packages: make(map[Package]map[Version][]Term),
	}
}

// Root implements Source.
func (s *InMemorySource) Root() Package { return s.root }

// VersionsFor implements Source.
func (s *InMemorySource) VersionsFor(constraint VersionConstraint) ([]Version, error) {
	if constraint.Package == s.root {
		return []Version{rootVersion}, nil
	}
	versions, ok := s.packages[constraint.Package]
	if !ok {
		return nil, &PackageNotFoundError{Package: constraint.Package}
	}
	result := make([]Version, 0, len(versions))
	for v := range versions {
		result = append(result, v)
	}
	slices.SortFunc(result, func(a, b Version) int { return a.Sort(b) })
	return result, nil
}

// IncompatibilitiesFor implements Source.
func (s *InMemorySource) IncompatibilitiesFor(pkg Package, version Version) ([]*Incompatibility, error) {
	if pkg == s.root {
		incs := make([]*Incompatibility, len(s.rootDeps))
		for i, dep := range s.rootDeps {
			incs[i] = NewDependencyIncompatibility(pkg, version, dep)
		}
		return incs, nil
	}

	versions, ok := s.packages[pkg]
	if !ok {
		return nil, &PackageNotFoundError{Package: pkg}
	}
	deps, ok := versions[version]
	if !ok {
		// Versions that compare equal but are distinct values (e.g. two
		// parsed SemverVersions) do not match as map keys.
		for v, d := range versions {
			if v.Sort(version) == 0 {
				deps, ok = d, true
				break
			}
		}
	}
	if !ok {
		return nil, &PackageVersionNotFoundError{Package: pkg, Version: version}
	}

	incs := make([]*Incompatibility, len(deps))
	for i, dep := range deps {
		incs[i] = NewDependencyIncompatibility(pkg, version, dep)
	}
	return incs, nil
}

// AddPackage registers a package version with its dependency terms.
func (s *InMemorySource) AddPackage(pkg Package, version Version, deps []Term) {
	if s.packages[pkg] == nil {
		s.packages[pkg] = make(map[Version][]Term)
	}
	s.packages[pkg][version] = deps
}

// AddRootDependency adds a top-level requirement the solver must satisfy.
func (s *InMemorySource) AddRootDependency(dep Term) {
	s.rootDeps = append(s.rootDeps, dep)
}

var _ Source = (*InMemorySource)(nil)
