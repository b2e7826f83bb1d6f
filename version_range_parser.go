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

// renderRange implements spec.md §6's "conventional rendering" of a
// VersionRange: a single interval prints as a comparator expression, a
// union prints its members joined by " || ".
func renderRange(r VersionRange) string {
	if r.IsAny() {
		return "*"
	}
	if r.IsEmpty() {
		return "<empty>"
	}
	if v, ok := r.singleVersion(); ok {
		return fmt.Sprintf("==%s", v)
	}

	intervals := r.flattenToIntervals()
	parts := make([]string, len(intervals))
	for i, iv := range intervals {
		parts[i] = renderInterval(iv)
	}
	return strings.Join(parts, " || ")
}

func renderInterval(iv versionInterval) string {
	var lower, upper string
	if iv.lower.isFinite() {
		op := ">="
		if !iv.lower.inclusive {
			op = ">"
		}
		lower = fmt.Sprintf("%s%s", op, iv.lower.version)
	}
	if iv.upper.isFinite() {
		op := "<="
		if !iv.upper.inclusive {
			op = "<"
		}
		upper = fmt.Sprintf("%s%s", op, iv.upper.version)
	}

	switch {
	case lower != "" && upper != "":
		return lower + "," + upper
	case lower != "":
		return lower
	case upper != "":
		return upper
	default:
		return "*"
	}
}

// ParseVersionRange parses the textual range syntax spec.md §6
// describes: comparison operators (>=, >, <=, <, ==, !=, =), comma for
// AND, "||" for OR, "*" for Any, "<empty>" for Empty. Versions are parsed as SemverVersion
// when possible, falling back to SimpleVersion.
func ParseVersionRange(s string) (VersionRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Any(), nil
	}
	if s == "<empty>" {
		return Empty(), nil
	}

	orParts := strings.Split(s, "||")
	result := Empty()

	for _, orPart := range orParts {
		orPart = strings.TrimSpace(orPart)
		if orPart == "" {
			return VersionRange{}, fmt.Errorf("invalid empty range in %q", s)
		}

		current := Any()
		for _, andPart := range strings.Split(orPart, ",") {
			token := strings.TrimSpace(andPart)
			if token == "" {
				return VersionRange{}, fmt.Errorf("invalid empty constraint in %q", orPart)
			}
			r, err := parseRangeExpression(token)
			if err != nil {
				return VersionRange{}, err
			}
			current = current.Intersect(r)
			if current.IsEmpty() {
				break
			}
		}
		result = result.Union(current)
	}

	return result, nil
}

func parseVersionToken(raw string) (Version, error) {
	if raw == "" {
		return nil, fmt.Errorf("missing version in range expression")
	}
	if sv, err := ParseSemverVersion(raw); err == nil {
		return sv, nil
	}
	return SimpleVersion(raw), nil
}

func parseRangeExpression(expr string) (VersionRange, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return VersionRange{}, fmt.Errorf("empty range expression")
	}

	operators := []struct {
		prefix  string
		builder func(Version) VersionRange
	}{
		{">=", func(v Version) VersionRange { return AtLeast(v, true) }},
		{">", func(v Version) VersionRange { return AtLeast(v, false) }},
		{"<=", func(v Version) VersionRange { return Before(v, true) }},
		{"<", func(v Version) VersionRange { return Before(v, false) }},
		{"==", func(v Version) VersionRange { return Singleton(v) }},
		{"!=", func(v Version) VersionRange { return Singleton(v).Invert() }},
		{"=", func(v Version) VersionRange { return Singleton(v) }},
	}

	for _, op := range operators {
		if strings.HasPrefix(expr, op.prefix) {
			versionStr := strings.TrimSpace(expr[len(op.prefix):])
			version, err := parseVersionToken(versionStr)
			if err != nil {
				return VersionRange{}, err
			}
			return op.builder(version), nil
		}
	}

	version, err := parseVersionToken(expr)
	if err != nil {
		return VersionRange{}, err
	}
	return Singleton(version), nil
}
