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
	"fmt"
	"strings"
)

// Reporter formats a failure Incompatibility's derivation tree into a
// human-readable error message.
type Reporter interface {
	Report(incomp *Incompatibility) string
}

// DefaultReporter renders the derivation tree with hierarchical
// indentation: "Because: ... and: ..." blocks nested by depth.
type DefaultReporter struct{}

func (r *DefaultReporter) Report(incomp *Incompatibility) string {
	if incomp == nil {
		return "no solution found"
	}
	var lines []string
	r.reportIncompatibility(incomp, &lines, 0, make(map[*Incompatibility]bool))
	return strings.Join(lines, "\n")
}

func (r *DefaultReporter) reportIncompatibility(incomp *Incompatibility, lines *[]string, depth int, visited map[*Incompatibility]bool) {
	if visited[incomp] {
		return
	}
	visited[incomp] = true
	indent := strings.Repeat("  ", depth)

	switch {
	case incomp.Cause == CauseDependency && incomp.DependencyVersion != nil && len(incomp.Terms) == 2:
		dep := dependencyTerm(incomp)
		*lines = append(*lines, fmt.Sprintf("%sBecause %s %s depends on %s", indent, incomp.DependencyPackage.Value(), incomp.DependencyVersion, dep))
	case incomp.Cause == CauseDependency:
		if len(incomp.Terms) > 0 {
			*lines = append(*lines, fmt.Sprintf("%sNo versions of %s satisfy the constraint", indent, incomp.Terms[0]))
		}
	case incomp.Cause == CauseConflict && incomp.Left != nil && incomp.Right != nil:
		*lines = append(*lines, fmt.Sprintf("%sBecause:", indent))
		r.reportIncompatibility(incomp.Left, lines, depth+1, visited)
		*lines = append(*lines, fmt.Sprintf("%sand:", indent))
		r.reportIncompatibility(incomp.Right, lines, depth+1, visited)

		switch len(incomp.Terms) {
		case 0:
			*lines = append(*lines, fmt.Sprintf("%sversion solving has failed.", indent))
		case 1:
			*lines = append(*lines, fmt.Sprintf("%s%s is forbidden.", indent, incomp.Terms[0]))
		default:
			*lines = append(*lines, fmt.Sprintf("%sthese constraints conflict: %s", indent, joinTerms(incomp.Terms)))
		}
	default:
		*lines = append(*lines, fmt.Sprintf("%s%s", indent, incomp.String()))
	}
}

// CollapsedReporter renders a flat "And because" chain instead of
// hierarchical indentation.
type CollapsedReporter struct{}

func (r *CollapsedReporter) Report(incomp *Incompatibility) string {
	if incomp == nil {
		return "no solution found"
	}
	var lines []string
	r.collectLines(incomp, &lines, make(map[*Incompatibility]bool))
	if len(lines) == 0 {
		return "version solving failed"
	}
	result := lines[0]
	for _, line := range lines[1:] {
		result += "\nAnd because " + line
	}
	return result
}

func (r *CollapsedReporter) collectLines(incomp *Incompatibility, lines *[]string, visited map[*Incompatibility]bool) {
	if visited[incomp] {
		return
	}
	visited[incomp] = true

	switch {
	case incomp.Cause == CauseDependency && incomp.DependencyVersion != nil && len(incomp.Terms) == 2:
		dep := dependencyTerm(incomp)
		*lines = append(*lines, fmt.Sprintf("%s %s depends on %s", incomp.DependencyPackage.Value(), incomp.DependencyVersion, dep))
	case incomp.Cause == CauseDependency:
		if len(incomp.Terms) > 0 {
			*lines = append(*lines, fmt.Sprintf("no versions of %s satisfy the constraint", incomp.Terms[0]))
		}
	case incomp.Cause == CauseConflict && incomp.Left != nil && incomp.Right != nil:
		r.collectLines(incomp.Left, lines, visited)
		r.collectLines(incomp.Right, lines, visited)
		switch len(incomp.Terms) {
		case 1:
			*lines = append(*lines, fmt.Sprintf("%s is forbidden", incomp.Terms[0]))
		default:
			if len(incomp.Terms) > 1 {
				*lines = append(*lines, fmt.Sprintf("these constraints conflict: %s", joinTerms(incomp.Terms)))
			}
		}
	default:
		*lines = append(*lines, incomp.String())
	}
}

func dependencyTerm(incomp *Incompatibility) Term {
	var dep Term
	for _, t := range incomp.Terms {
		if t.Package() != incomp.DependencyPackage {
			dep = t
			break
		}
	}
	if !dep.Positive {
		dep = dep.Negate()
	}
	return dep
}

func joinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " and ")
}
