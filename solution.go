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

import "iter"

// Solution is the result of a successful Solve: every non-root package
// the search touched, mapped to its decided version.
type Solution map[Package]Version

// Version returns the decided version for pkg, if any.
func (s Solution) Version(pkg Package) (Version, bool) {
	v, ok := s[pkg]
	return v, ok
}

// All returns an iterator over every (package, version) pair.
func (s Solution) All() iter.Seq2[Package, Version] {
	return func(yield func(Package, Version) bool) {
		for pkg, v := range s {
			if !yield(pkg, v) {
				return
			}
		}
	}
}
