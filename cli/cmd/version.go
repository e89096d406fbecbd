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
	"github.com/spf13/cobra"

	"github.com/Spatium-Labs/desod/srv"
)

// Revision is set at build time with -ldflags.
var Revision = "development"

// versionCmd represents the version command
var versionCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the deso-cli and desod versions",
		Args:  cobra.ExactArgs(0),
		Run:   version,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["version"] = versionCmplCmd
	rootCmplCmd.Sub["help"].Sub["version"] = complete.Command{}
	generateCmplFlags(cmd, versionCmplCmd.Flags)
	return cmd
}()

var versionCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func version(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "deso-cli:  %v\n", Revision)
	var props srv.ResultGetDaemonProperties
	if err := DesodClient.Request("get-daemon-properties", nil,
		&props); err != nil {
		vrbLog.Debugf("get-daemon-properties: %v", err)
		fmt.Fprintf(out, "desod:     unavailable at %v\n",
			DesodClient.DesodServer)
		return
	}
	fmt.Fprintf(out, "desod:     %v\n", props.DesodVersion)
	fmt.Fprintf(out, "desod API: %v\n", props.APIVersion)
	fmt.Fprintf(out, "node:      %v\n", props.Node)
	fmt.Fprintf(out, "account:   %v\n", props.PublicKey)
}
