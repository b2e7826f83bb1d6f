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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	pubgrub "github.com/matt-morris/pub-grub"
	"github.com/matt-morris/pub-grub/internal/scenario"
)

// NewSolveCommand builds the "solve" subcommand.
func NewSolveCommand() *cobra.Command {
	var (
		maxSteps  int
		preferOld bool
		track     bool
		collapsed bool
		debugLog  bool
	)

	cmd := &cobra.Command{
		Use:   "solve <path>",
		Short: "Resolves a dependency scenario described in a text file",
		Long: `Resolves a dependency scenario given as a text file. For instance:

package foo 1.0.0
package foo 1.1.0 depends bar >=2.0.0
package bar 2.0.0
package bar 2.1.0
root depends foo >=1.0.0,<2.0.0
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], runOptions{
				maxSteps:     maxSteps,
				preferOldest: preferOld,
				track:        track,
				collapsed:    collapsed,
				debugLog:     debugLog,
			})
		},
	}

	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "bound the solver's iteration count (0 uses the solver default)")
	cmd.Flags().BoolVar(&preferOld, "prefer-oldest", false, "pick the oldest satisfying version at each decision instead of the newest")
	cmd.Flags().BoolVar(&track, "track-incompatibilities", false, "collect learned incompatibilities for a detailed failure report")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "render a failure report with CollapsedReporter instead of DefaultReporter")
	cmd.Flags().BoolVar(&debugLog, "debug", false, "emit structured solver diagnostics to stderr")

	return cmd
}

type runOptions struct {
	maxSteps     int
	preferOldest bool
	track        bool
	collapsed    bool
	debugLog     bool
}

func run(path string, opts runOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening scenario file (%s): %w", path, err)
	}
	defer f.Close()

	s, err := scenario.Parse(f)
	if err != nil {
		return fmt.Errorf("error parsing scenario file (%s): %w", path, err)
	}

	source, err := s.Build()
	if err != nil {
		return fmt.Errorf("error building scenario (%s): %w", path, err)
	}

	var solverOpts []pubgrub.SolverOption
	if opts.maxSteps > 0 {
		solverOpts = append(solverOpts, pubgrub.WithMaxSteps(opts.maxSteps))
	}
	if opts.preferOldest {
		solverOpts = append(solverOpts, pubgrub.WithDecisionHeuristic(pubgrub.PreferOldest))
	}
	if opts.track {
		solverOpts = append(solverOpts, pubgrub.WithIncompatibilityTracking(true))
	}
	if opts.debugLog {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		solverOpts = append(solverOpts, pubgrub.WithLogger(logger))
	}

	solver := pubgrub.NewVersionSolver(source, solverOpts...)
	solution, err := solver.Solve()
	if err != nil {
		var reporter pubgrub.Reporter = &pubgrub.DefaultReporter{}
		if opts.collapsed {
			reporter = &pubgrub.CollapsedReporter{}
		}
		var nsErr *pubgrub.NoSolutionError
		if errors.As(err, &nsErr) {
			fmt.Println("no solution found:")
			fmt.Println(nsErr.WithReporter(reporter).Error())
			return nil
		}
		fmt.Printf("solve failed: %s\n", err)
		return nil
	}

	fmt.Println("solution found:")
	for pkg, version := range solution.All() {
		fmt.Printf("%s = %s\n", pkg.Value(), version)
	}

	return nil
}
