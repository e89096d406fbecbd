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
	"text/tabwriter"
	"time"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Spatium-Labs/desod/journal"
	"github.com/Spatium-Labs/desod/srv"
)

var paramsGetSubmissions srv.ParamsGetSubmissions

// historyCmd represents the history command
var historyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history [--limit <n>] [--unconfirmed]",
		Aliases: []string{"submissions"},
		Short:   "List submissions made through desod",
		Long: `
List the most recent transactions that desod submitted, newest first.
`[1:],
		Args: cobra.ExactArgs(0),
		PreRunE: func(*cobra.Command, []string) error {
			return paramsGetSubmissions.IsValid()
		},
		RunE: history,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["history"] = historyCmplCmd
	rootCmplCmd.Sub["help"].Sub["history"] = complete.Command{}

	flags := cmd.Flags()
	flags.Uint64VarP(&paramsGetSubmissions.Limit, "limit", "l", 25,
		"Maximum number of submissions to list")
	flags.BoolVar(&paramsGetSubmissions.Unconfirmed, "unconfirmed", false,
		"List only submissions that were not confirmed")

	generateCmplFlags(cmd, historyCmplCmd.Flags)
	return cmd
}()

var historyCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func history(cmd *cobra.Command, _ []string) error {
	var subs []journal.Submission
	if err := DesodClient.Request("get-submissions", paramsGetSubmissions,
		&subs); err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTYPE\tTRANSACTION\tCONFIRMED")
	for _, sub := range subs {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n",
			sub.CreatedAt.Format(time.RFC3339), sub.Type,
			sub.TxnHash, sub.Confirmed)
	}
	return w.Flush()
}
