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

	"github.com/Spatium-Labs/desod/deso"
)

// pubkeyCmd represents the pubkey command
var pubkeyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey",
		Short: "Print the public key of a seed hex",
		Long: `
Print the base58 public key of the seed hex for the network of --node.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: pubkey,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["pubkey"] = pubkeyCmplCmd
	rootCmplCmd.Sub["help"].Sub["pubkey"] = complete.Command{}
	generateCmplFlags(cmd, pubkeyCmplCmd.Flags)
	return cmd
}()

var pubkeyCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func pubkey(cmd *cobra.Command, _ []string) error {
	seed, err := readSeedHex()
	if err != nil {
		return err
	}
	sk, err := deso.ParsePrivateKey(seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sk.PublicKey(NodeClient.Node.Network()))
	return nil
}
