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

package solve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRun_SolvableScenario(t *testing.T) {
	path := writeScenario(t, ""+
		"package foo 1.0.0\n"+
		"package foo 1.1.0 depends bar >=2.0.0\n"+
		"package bar 2.0.0\n"+
		"package bar 2.1.0\n"+
		"root depends foo >=1.0.0,<2.0.0\n")

	err := run(path, runOptions{})
	require.NoError(t, err)
}

func TestRun_UnsolvableScenario(t *testing.T) {
	path := writeScenario(t, ""+
		"package foo 1.0.0 depends bar ==2.0.0\n"+
		"package bar 1.0.0\n"+
		"root depends foo ==1.0.0\n")

	err := run(path, runOptions{track: true, collapsed: true})
	require.NoError(t, err, "run prints the failure report rather than returning an error")
}

func TestRun_MissingFile(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "nope.txt"), runOptions{})
	require.Error(t, err)
}

func TestRun_BadScenario(t *testing.T) {
	path := writeScenario(t, "not a valid statement\n")
	err := run(path, runOptions{})
	require.Error(t, err)
}

func TestRun_MaxStepsExhausted(t *testing.T) {
	path := writeScenario(t, ""+
		"package foo 1.0.0\n"+
		"root depends foo >=1.0.0\n")

	err := run(path, runOptions{maxSteps: 1})
	require.NoError(t, err, "run prints the solve failure rather than returning an error")
}
