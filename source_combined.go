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
	"slices"
)

// CombinedSource aggregates several Source values into one, trying each
// in order and merging the results. Its own Root is the first source's
// Root — conventionally a RootSource placed first, so that the rest of
// the chain is treated purely as package metadata.
type CombinedSource []Source

// Root implements Source.
func (s CombinedSource) Root() Package {
	if len(s) == 0 {
		return Root
	}
	return s[0].Root()
}

// VersionsFor queries every source and merges the results in ascending
// order. Fails only if every source returns PackageNotFoundError.
func (s CombinedSource) VersionsFor(constraint VersionConstraint) ([]Version, error) {
	var result []Version
	found := false
	for _, source := range s {
		versions, err := source.VersionsFor(constraint)
		if err != nil {
			var notFound *PackageNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, err
		}
		found = true
		result = append(result, versions...)
	}
	if !found {
		return nil, &PackageNotFoundError{Package: constraint.Package}
	}
	slices.SortFunc(result, func(a, b Version) int { return a.Sort(b) })
	return slices.CompactFunc(result, func(a, b Version) bool { return a.Sort(b) == 0 }), nil
}

// IncompatibilitiesFor returns the first source's answer for pkg@version
// that doesn't report the package or version as unknown.
func (s CombinedSource) IncompatibilitiesFor(pkg Package, version Version) ([]*Incompatibility, error) {
	for _, source := range s {
		incs, err := source.IncompatibilitiesFor(pkg, version)
		if err != nil {
			var notFoundPkg *PackageNotFoundError
			var notFoundVer *PackageVersionNotFoundError
			if errors.As(err, &notFoundPkg) || errors.As(err, &notFoundVer) {
				continue
			}
			return nil, err
		}
		return incs, nil
	}
	return nil, &PackageVersionNotFoundError{Package: pkg, Version: version}
}

var _ Source = CombinedSource{}
