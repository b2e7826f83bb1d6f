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

package pubgrub_test

import (
	"fmt"

	pubgrub "github.com/matt-morris/pub-grub"
)

// ExampleVersionSolver_Solve demonstrates resolving a small dependency
// graph with an InMemorySource.
func ExampleVersionSolver_Solve() {
	foo := pubgrub.MakePackage("foo")
	bar := pubgrub.MakePackage("bar")

	source := pubgrub.NewInMemorySource()

	range1x, _ := pubgrub.ParseVersionRange(">=1.0.0,<2.0.0")
	range2x, _ := pubgrub.ParseVersionRange(">=2.0.0")

	source.AddPackage(foo, pubgrub.MustSemverVersion("1.0.0"), nil)
	source.AddPackage(foo, pubgrub.MustSemverVersion("1.1.0"), []pubgrub.Term{
		pubgrub.NewTerm(pubgrub.NewConstraint(bar, range2x)),
	})
	source.AddPackage(bar, pubgrub.MustSemverVersion("2.0.0"), nil)
	source.AddPackage(bar, pubgrub.MustSemverVersion("2.1.0"), nil)
	source.AddRootDependency(pubgrub.NewTerm(pubgrub.NewConstraint(foo, range1x)))

	solver := pubgrub.NewVersionSolver(source)
	solution, err := solver.Solve()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fooVersion, _ := solution.Version(foo)
	barVersion, _ := solution.Version(bar)
	fmt.Printf("foo = %s\n", fooVersion)
	fmt.Printf("bar = %s\n", barVersion)
	// Output:
	// foo = 1.1.0
	// bar = 2.1.0
}

// ExampleParseVersionRange demonstrates parsing and rendering various
// version range formats.
func ExampleParseVersionRange() {
	range1, _ := pubgrub.ParseVersionRange(">=1.0.0")
	fmt.Println("Range 1:", range1.String())

	range2, _ := pubgrub.ParseVersionRange(">=1.0.0,<2.0.0")
	fmt.Println("Range 2:", range2.String())

	range3, _ := pubgrub.ParseVersionRange(">=1.0.0,<2.0.0 || >=3.0.0")
	fmt.Println("Range 3:", range3.String())

	v150 := pubgrub.MustSemverVersion("1.5.0")
	fmt.Println("1.5.0 in range2:", range2.Include(v150))

	// Output:
	// Range 1: >=1.0.0
	// Range 2: >=1.0.0,<2.0.0
	// Range 3: >=1.0.0,<2.0.0 || >=3.0.0
	// 1.5.0 in range2: true
}

// ExampleSemverVersion demonstrates semantic version parsing and comparison.
func ExampleSemverVersion() {
	v1 := pubgrub.MustSemverVersion("1.2.3")
	v2 := pubgrub.MustSemverVersion("1.2.4")
	v3 := pubgrub.MustSemverVersion("2.0.0-alpha")
	v200 := pubgrub.MustSemverVersion("2.0.0")

	fmt.Println("v1 < v2:", v1.Sort(v2) < 0)
	fmt.Println("v2 > v1:", v2.Sort(v1) > 0)
	fmt.Println("v3 (prerelease) < 2.0.0:", v3.Sort(v200) < 0)

	// Output:
	// v1 < v2: true
	// v2 > v1: true
	// v3 (prerelease) < 2.0.0: true
}
