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

// Package satcheck is a test-only differential oracle for the solver.
// It re-expresses a small, fully enumerated dependency scenario as a
// boolean satisfiability problem and hands it to gini, so that a test
// can confirm the PubGrub solver's sat/unsat verdict agrees with an
// independently implemented search procedure over the same facts. It
// is never imported by the production solving path.
package satcheck

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	pubgrub "github.com/matt-morris/pub-grub"
)

// Candidate is one version of a package, along with the dependency
// terms that version declares. It mirrors the (package, version, deps)
// triple an InMemorySource.AddPackage call records.
type Candidate struct {
	Package pubgrub.Package
	Version pubgrub.Version
	Deps    []pubgrub.Term
}

// Scenario is the closed-world dependency graph Check encodes: every
// package that can ever be selected, with every version it could take,
// must be listed in Candidates. A dependency whose target package is
// absent from Candidates is treated as unsatisfiable.
type Scenario struct {
	Candidates []Candidate
	RootDeps   []pubgrub.Term
}

// Check reports whether s is satisfiable: whether there exists an
// assignment of at most one version to each package such that every
// root dependency and every selected candidate's dependencies are
// satisfied. It is the ground truth a test compares
// VersionSolver.Solve's success/failure against.
func Check(s Scenario) (bool, error) {
	g := gini.New()

	byPackage := make(map[pubgrub.Package][]Candidate)
	for _, c := range s.Candidates {
		byPackage[c.Package] = append(byPackage[c.Package], c)
	}

	lits := make(map[pubgrub.Package]map[pubgrub.Version]z.Lit, len(s.Candidates))
	for pkg, candidates := range byPackage {
		lits[pkg] = make(map[pubgrub.Version]z.Lit, len(candidates))
		for _, c := range candidates {
			lits[pkg][c.Version] = g.Lit()
		}
	}

	// At most one version of each package may be selected.
	for pkg, candidates := range byPackage {
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				a := lits[pkg][candidates[i].Version]
				b := lits[pkg][candidates[j].Version]
				g.Add(a.Not())
				g.Add(b.Not())
				g.Add(0)
			}
		}
	}

	// Every root dependency must be satisfied by some candidate version
	// of its package, since root is unconditionally selected.
	for _, dep := range s.RootDeps {
		for _, m := range satisfyingLits(lits, byPackage, dep) {
			g.Add(m)
		}
		g.Add(0)
	}

	// Selecting a candidate forces at least one satisfying version of
	// each of its dependencies to be selected too: not(p@v) or (OR of
	// dep's satisfying versions).
	for _, c := range s.Candidates {
		self := lits[c.Package][c.Version]
		for _, dep := range c.Deps {
			g.Add(self.Not())
			for _, m := range satisfyingLits(lits, byPackage, dep) {
				g.Add(m)
			}
			g.Add(0)
		}
	}

	switch g.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, fmt.Errorf("satcheck: gini returned an indeterminate result")
	}
}

// satisfyingLits returns the literals of every candidate version of
// dep's package that falls within dep's range. A dependency whose
// package has no candidates at all yields an empty, always-false
// clause, modelling an unresolvable dependency.
func satisfyingLits(lits map[pubgrub.Package]map[pubgrub.Version]z.Lit, byPackage map[pubgrub.Package][]Candidate, dep pubgrub.Term) []z.Lit {
	var clause []z.Lit
	for _, c := range byPackage[dep.Package()] {
		if dep.Satisfies(c.Version) {
			clause = append(clause, lits[dep.Package()][c.Version])
		}
	}
	return clause
}
