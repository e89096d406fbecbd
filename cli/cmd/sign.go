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
	"context"
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Spatium-Labs/desod/deso"
)

var (
	unsignedTxn deso.Bytes
	sigIndex    int
)

// signCmd represents the sign command
var signCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "sign [--index <signature-index>] TX_HEX",
		Short:                 "Sign a transaction",
		Long: `
Sign the unsigned transaction TX_HEX with the account's seed hex and print the
signed transaction hex.

If --index is set, the transaction is signed offline. Otherwise the signature
index is requested from --node, after appending the derived public key if
--derived-public-key is set.
`[1:],
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			if err := unsignedTxn.Set(args[0]); err != nil {
				return fmt.Errorf("TX_HEX: %v", err)
			}
			return nil
		},
		RunE: sign,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["sign"] = signCmplCmd
	rootCmplCmd.Sub["help"].Sub["sign"] = complete.Command{}

	cmd.Flags().IntVarP(&sigIndex, "index", "i", 0,
		"Signature index, the offset of the signature placeholder byte")

	generateCmplFlags(cmd, signCmplCmd.Flags)
	return cmd
}()

var signCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func sign(cmd *cobra.Command, _ []string) error {
	acct, err := account()
	if err != nil {
		return err
	}
	var signed deso.Bytes
	if cmd.Flags().Changed("index") {
		signed, err = deso.SignTransaction(unsignedTxn,
			acct.PrivateKey(), sigIndex)
	} else {
		signed, err = NodeClient.Sign(context.Background(), acct, unsignedTxn)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
