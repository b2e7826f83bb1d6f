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

// Package scenario parses the small text format pubgrubctl reads its
// dependency graphs from, and builds a pubgrub.InMemorySource from it.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	pubgrub "github.com/matt-morris/pub-grub"
)

// Scenario is a parsed dependency graph: a set of package versions,
// each with zero or more dependency ranges, plus the root's own
// requirements.
//
// Text format, one statement per line:
//
//	# a comment
//	package foo 1.0.0
//	package foo 1.1.0 depends bar >=2.0.0
//	root depends foo >=1.0.0,<2.0.0
//
// A package line may repeat for the same name/version to declare
// multiple dependencies. Ranges must not contain spaces; write
// ">=1.0.0,<2.0.0" rather than ">= 1.0.0, < 2.0.0".
type Scenario struct {
	versions []packageVersion
	rootDeps []dependency
}

type packageVersion struct {
	name    string
	version string
	deps    []dependency
}

type dependency struct {
	pkg       string
	rangeExpr string
}

var (
	commentLine = regexp.MustCompile(`^\s*(#.*)?$`)
	packageLine = regexp.MustCompile(`^package\s+(\S+)\s+(\S+)(?:\s+depends\s+(\S+)\s+(\S+))?\s*$`)
	rootLine    = regexp.MustCompile(`^root\s+depends\s+(\S+)\s+(\S+)\s*$`)
)

// Parse reads a scenario from r, one statement per line.
func Parse(r io.Reader) (*Scenario, error) {
	s := &Scenario{}
	byNameVersion := make(map[[2]string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if commentLine.MatchString(line) {
			continue
		}

		if m := packageLine.FindStringSubmatch(line); m != nil {
			name, version, depPkg, depRange := m[1], m[2], m[3], m[4]
			key := [2]string{name, version}
			idx, ok := byNameVersion[key]
			if !ok {
				idx = len(s.versions)
				s.versions = append(s.versions, packageVersion{name: name, version: version})
				byNameVersion[key] = idx
			}
			if depPkg != "" {
				s.versions[idx].deps = append(s.versions[idx].deps, dependency{pkg: depPkg, rangeExpr: depRange})
			}
			continue
		}

		if m := rootLine.FindStringSubmatch(line); m != nil {
			s.rootDeps = append(s.rootDeps, dependency{pkg: m[1], rangeExpr: m[2]})
			continue
		}

		return nil, fmt.Errorf("line %d: invalid statement: %q", lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	if len(s.versions) == 0 {
		return nil, errors.New("scenario declares no package versions")
	}
	return s, nil
}

func parseVersion(s string) (pubgrub.Version, error) {
	if sv, err := pubgrub.ParseSemverVersion(s); err == nil {
		return sv, nil
	}
	return pubgrub.SimpleVersion(s), nil
}

// Build materializes the scenario into an InMemorySource, ready to hand
// to a VersionSolver.
func (s *Scenario) Build() (*pubgrub.InMemorySource, error) {
	source := pubgrub.NewInMemorySource()
	packageFor := pubgrub.MakePackage

	for _, pv := range s.versions {
		version, err := parseVersion(pv.version)
		if err != nil {
			return nil, fmt.Errorf("package %s %s: %w", pv.name, pv.version, err)
		}
		terms := make([]pubgrub.Term, 0, len(pv.deps))
		for _, dep := range pv.deps {
			r, err := pubgrub.ParseVersionRange(dep.rangeExpr)
			if err != nil {
				return nil, fmt.Errorf("package %s %s depends %s: %w", pv.name, pv.version, dep.pkg, err)
			}
			terms = append(terms, pubgrub.NewTerm(pubgrub.NewConstraint(packageFor(dep.pkg), r)))
		}
		source.AddPackage(packageFor(pv.name), version, terms)
	}

	for _, dep := range s.rootDeps {
		r, err := pubgrub.ParseVersionRange(dep.rangeExpr)
		if err != nil {
			return nil, fmt.Errorf("root depends %s: %w", dep.pkg, err)
		}
		source.AddRootDependency(pubgrub.NewTerm(pubgrub.NewConstraint(packageFor(dep.pkg), r)))
	}

	return source, nil
}
