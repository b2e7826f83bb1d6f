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

import "unique"

// Version is an opaque, totally ordered value supplied by the embedder.
// The solver never inspects a Version beyond String and Sort; it does not
// define version syntax, ordering rules, or pre-release semantics.
type Version interface {
	// String returns a human-readable representation of the version.
	String() string

	// Sort compares this version to another, returning negative, zero, or
	// positive as this version is less than, equal to, or greater than other.
	Sort(other Version) int
}

// Package is an opaque, equality- and hash-comparable package identifier.
// Package uses string interning so that repeated identifiers compare by
// pointer rather than by string content.
type Package = unique.Handle[string]

// MakePackage interns a package identifier. Equal strings always produce
// equal Package values.
func MakePackage(name string) Package {
	return unique.Make(name)
}

// rootPackageName is the synthetic identifier for the user's top-level
// requirement set. It is distinguished by construction, never by a
// reserved string a real package could collide with.
const rootPackageName = "$root"

// Root is the distinguished Package denoting the synthetic root of a
// solve: the solver seeds itself by requiring Root, and Root's
// dependencies (via Source.IncompatibilitiesFor) are the caller's
// top-level requirements.
var Root = MakePackage(rootPackageName)

// rootVersion is the single, implicit version of the Root package. Only
// RootSource (or an embedder's equivalent) ever needs to know this value.
var rootVersion Version = SimpleVersion("root")
