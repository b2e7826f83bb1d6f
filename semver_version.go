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

	"github.com/Masterminds/semver/v3"
)

// SemverVersion adapts github.com/Masterminds/semver/v3 to the Version
// interface. It is an embedder convenience, not part of the solver's
// contract — spec.md deliberately leaves version syntax and ordering
// unspecified (§12 Non-Goals).
type SemverVersion struct {
	inner *semver.Version
}

// ParseSemverVersion parses s as a semantic version.
func ParseSemverVersion(s string) (SemverVersion, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return SemverVersion{}, fmt.Errorf("parsing semantic version %q: %w", s, err)
	}
	return SemverVersion{inner: v}, nil
}

// MustSemverVersion parses s and panics on error, for table-driven tests
// and literal construction where s is known good.
func MustSemverVersion(s string) SemverVersion {
	v, err := ParseSemverVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v SemverVersion) String() string {
	if v.inner == nil {
		return ""
	}
	return v.inner.String()
}

// Sort implements Version via semver's own precedence rules (numeric
// major/minor/patch, then pre-release precedence per semver 2.0.0).
func (v SemverVersion) Sort(other Version) int {
	o, ok := other.(SemverVersion)
	if !ok || o.inner == nil {
		return v.inner.Compare(mustReparse(other))
	}
	return v.inner.Compare(o.inner)
}

// mustReparse lets SemverVersion.Sort compare against any Version whose
// String() happens to be valid semver, for interop with constraints
// parsed from plain text.
func mustReparse(v Version) *semver.Version {
	parsed, err := semver.NewVersion(v.String())
	if err != nil {
		panic(fmt.Errorf("cannot compare SemverVersion against %T: %w", v, err))
	}
	return parsed
}

var _ Version = SemverVersion{}
