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

package root

import (
	"github.com/spf13/cobra"

	"github.com/matt-morris/pub-grub/cmd/pubgrubctl/solve"
)

// NewRootCmd builds the pubgrubctl command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pubgrubctl",
		Short: "pubgrubctl resolves dependency version scenarios with PubGrub",
		Long: `pubgrubctl runs the PubGrub CDCL version solver against a small
text description of a dependency graph.

For more on the algorithm, see https://github.com/dart-lang/pub/blob/master/doc/solver.md`,
	}

	rootCmd.AddCommand(solve.NewSolveCommand())

	return rootCmd
}
