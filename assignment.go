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

// assignmentKind distinguishes the two kinds of trail entries spec.md
// §3.6 defines: a Decision (the solver picked a concrete version) or a
// Derivation (unit propagation forced a term from an incompatibility).
type assignmentKind int

const (
	kindDecision assignmentKind = iota
	kindDerivation
)

// assignment is one entry on the PartialSolution's trail.
type assignment struct {
	kind          assignmentKind
	pkg           Package
	term          Term             // decision: positive Singleton(version); derivation: the derived term
	version       Version          // set only for decisions
	decisionLevel int
	index         int
	cause         *Incompatibility // set only for derivations
}

func (a *assignment) isDecision() bool { return a.kind == kindDecision }

func (a *assignment) describe() string {
	if a.isDecision() {
		return fmt.Sprintf("decide %s = %s @%d", a.pkg.Value(), a.version, a.decisionLevel)
	}
	return fmt.Sprintf("derive %s @%d from %s", a.term, a.decisionLevel, a.cause)
}

func newDecisionAssignment(pkg Package, version Version, level, index int) *assignment {
	return &assignment{
		kind:          kindDecision,
		pkg:           pkg,
		term:          NewTerm(NewConstraint(pkg, Singleton(version))),
		version:       version,
		decisionLevel: level,
		index:         index,
	}
}

func newDerivationAssignment(term Term, cause *Incompatibility, level, index int) *assignment {
	return &assignment{
		kind:          kindDerivation,
		pkg:           term.Package(),
		term:          term,
		decisionLevel: level,
		index:         index,
		cause:         cause,
	}
}
