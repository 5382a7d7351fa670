// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/cscript/internal/scriptfile"
	"github.com/consensys/cscript/pkg/interpreter"
	"github.com/consensys/cscript/pkg/stdlib"
	"github.com/consensys/cscript/pkg/value"
	"github.com/consensys/cscript/pkg/vmerrors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run <program.json>",
	Short: "Run a cscript program.",
	Long:  "Load a cscript program from its JSON wire format and execute its entry function.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runRunCmd(cmd, args)
	},
}

func runRunCmd(cmd *cobra.Command, args []string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	entry := GetString(cmd, "entry")
	maxExpr := uint64(GetUint(cmd, "max-expr"))
	maxRecursive := GetUint(cmd, "max-recursive")
	callArgs := parseCallArgs(GetStringArray(cmd, "arg"))

	program, err := scriptfile.Load(args[0])
	if err != nil {
		fail(cmd, err)
	}

	registry, err := stdlib.NewRegistry()
	if err != nil {
		fail(cmd, err)
	}

	eval, err := interpreter.NewEvaluator(program, maxExpr, uint16(maxRecursive), registry)
	if err != nil {
		fail(cmd, err)
	}

	log.Debug(fmt.Sprintf("calling entry function %q with %d argument(s)", entry, len(callArgs)))

	code, err := eval.CallEntryFunction(entry, callArgs)
	if err != nil {
		fail(cmd, err)
	}

	printExitCode(cmd, code)
	os.Exit(0)
}

// parseCallArgs turns --arg flags (decimal u64 literals) into the argument
// list CallEntryFunction expects.
func parseCallArgs(raw []string) []value.Value {
	out := make([]value.Value, len(raw))

	for i, s := range raw {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --arg %q: %s\n", s, err)
			os.Exit(2)
		}

		out[i] = value.NewU64(n)
	}

	return out
}

// printExitCode reports a successful run's exit code, colorized green when
// stdout is a terminal and --no-color was not set (mirroring the teacher's
// own golang.org/x/term use for TTY-gated output).
func printExitCode(cmd *cobra.Command, code uint64) {
	if !GetFlag(cmd, "no-color") && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("\033[32mexit code: %d\033[0m\n", code)
		return
	}

	fmt.Printf("exit code: %d\n", code)
}

// fail reports err (colorized red on a TTY, same as printExitCode) and
// exits with the code bucket matching its vmerrors.Kind.
func fail(cmd *cobra.Command, err error) {
	if !GetFlag(cmd, "no-color") && term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintf(os.Stderr, "\033[31merror: %s\033[0m\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}

	os.Exit(exitCode(err))
}

// exitCode maps a vmerrors.Kind to a small process exit code, grouped the
// way the teacher's own cmd package picks distinct numeric codes per
// failure category rather than returning 1 for everything. (The flag
// accessors in this package's util.go all exit with 2.)
func exitCode(err error) int {
	verr, ok := err.(*vmerrors.Error)
	if !ok {
		return 1
	}

	switch verr.Kind() {
	case vmerrors.LimitReached, vmerrors.RecursiveLimitReached:
		return 5
	case vmerrors.FunctionNotFound, vmerrors.VariableNotFound, vmerrors.StructureNotFound,
		vmerrors.MappingNotFound, vmerrors.FunctionEntry, vmerrors.NoExitCode:
		return 4
	case vmerrors.OverflowOccured, vmerrors.DivByZero, vmerrors.CastError,
		vmerrors.OperationNotNumberType, vmerrors.OperationNotSameType:
		return 3
	default:
		return 2
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("entry", "main", "name of the entry function to call")
	runCmd.Flags().Uint("max-expr", 0, "maximum number of expressions/statements to evaluate (0 = unlimited)")
	runCmd.Flags().Uint("max-recursive", 0, "maximum call depth (0 = unlimited)")
	runCmd.Flags().StringArray("arg", []string{}, "u64 argument to pass to the entry function (repeatable)")
}
