// MIT License
//
// Copyright 2021 Spatium Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package cmd

import (
	"fmt"

	"github.com/posener/complete"
	"github.com/posener/complete/cmd/install"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

var (
	installCompletion   bool
	uninstallCompletion bool
	assumeYes           bool
)

var installCompletionFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.BoolVar(&installCompletion, "install", false,
		"Install shell completion for deso-cli")
	flags.BoolVar(&uninstallCompletion, "uninstall", false,
		"Uninstall shell completion for deso-cli")
	flags.BoolVarP(&assumeYes, "yes", "y", false,
		"Do not prompt before installing or uninstalling completion")
	return flags
}()

// Complete runs the CLI completion if deso-cli was invoked by the shell for
// completion.
func Complete() bool {
	comp := complete.New("deso-cli", rootCmplCmd)
	return comp.Complete()
}

// installCompletionMode installs or uninstalls shell completion if requested
// and reports whether it did anything.
func installCompletionMode() bool {
	switch {
	case installCompletion:
		if confirm("Install completion for deso-cli?") {
			if err := install.Install("deso-cli"); err != nil {
				errLog.Fatal(err)
			}
			fmt.Println("Completion installed, restart your shell.")
		}
		return true
	case uninstallCompletion:
		if confirm("Uninstall completion for deso-cli?") {
			if err := install.Uninstall("deso-cli"); err != nil {
				errLog.Fatal(err)
			}
			fmt.Println("Completion uninstalled.")
		}
		return true
	}
	return false
}

func confirm(question string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%v [y/N]: ", question)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}

// generateCmplFlags adds completion for all cmd.Flags() not already present in
// cmplFlags.
func generateCmplFlags(cmd *cobra.Command, cmplFlags complete.Flags) {
	// Due to a bug in cobra.Command.Flags(), we must call LocalFlags()
	// first to get any parent flags merged into cmd.Flags().
	// https://github.com/spf13/cobra/issues/412
	cmd.LocalFlags()
	cmd.Flags().VisitAll(func(flg *flag.Flag) {
		name := "--" + flg.Name
		// If the flag already has a custom completion, there is
		// nothing to do.
		if _, ok := cmplFlags[name]; ok {
			return
		}
		// Add a predictor
		var predict complete.Predictor = complete.PredictAnything
		if flg.Value.Type() == "bool" {
			predict = complete.PredictNothing
		}
		cmplFlags[name] = predict
		if len(flg.Shorthand) > 0 {
			cmplFlags["-"+flg.Shorthand] = predict
		}
	})
}

// mergeFlags returns a new complete.Flags that merges all flgs.
func mergeFlags(flgs ...complete.Flags) complete.Flags {
	var size int
	for _, flg := range flgs {
		size += len(flg)
	}
	f := make(complete.Flags, size)
	for _, flg := range flgs {
		for k, v := range flg {
			f[k] = v
		}
	}
	return f
}
