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

// RootSource answers only for the distinguished Root package, and is
// meant to be combined with a package-metadata Source via
// CombinedSource: the root's top-level requirements live here, every
// other package's versions and dependencies come from the other source.
//
// Example:
//
//	root := NewRootSource()
//	root.Require(foo, AtLeast(SimpleVersion("1.0.0"), true))
//	combined := CombinedSource{root, packageRegistry}
//	solver := NewVersionSolver(combined)
type RootSource struct {
	deps []Term
}

// NewRootSource creates an empty RootSource.
func NewRootSource() *RootSource {
	return &RootSource{}
}

// Root implements Source.
func (s *RootSource) Root() Package { return Root }

// VersionsFor implements Source: Root always has exactly rootVersion.
func (s *RootSource) VersionsFor(constraint VersionConstraint) ([]Version, error) {
	if constraint.Package != Root {
		return nil, &PackageNotFoundError{Package: constraint.Package}
	}
	return []Version{rootVersion}, nil
}

// IncompatibilitiesFor implements Source.
func (s *RootSource) IncompatibilitiesFor(pkg Package, version Version) ([]*Incompatibility, error) {
	if pkg != Root {
		return nil, &PackageNotFoundError{Package: pkg}
	}
	if version != rootVersion {
		return nil, &PackageVersionNotFoundError{Package: pkg, Version: version}
	}
	incs := make([]*Incompatibility, len(s.deps))
	for i, dep := range s.deps {
		incs[i] = NewDependencyIncompatibility(Root, rootVersion, dep)
	}
	return incs, nil
}

// Require adds a top-level requirement "pkg must fall within r".
func (s *RootSource) Require(pkg Package, r VersionRange) {
	s.deps = append(s.deps, NewTerm(NewConstraint(pkg, r)))
}

var _ Source = (*RootSource)(nil)
