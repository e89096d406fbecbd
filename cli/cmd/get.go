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
	"encoding/json"
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/srv"
)

// getCmd represents the get command
var getCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get data from the DeSo blockchain",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["get"] = getCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"] = complete.Command{Sub: complete.Commands{}}
	generateCmplFlags(cmd, getCmplCmd.Flags)
	return cmd
}()

var getCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

var paramsGetPost = srv.ParamsGetPost{PostHash: new(deso.Bytes32)}

// getPostCmd represents the get post command
var getPostCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "post [--comments <limit>] POST_HASH",
		Short:                 "Get a post and its comments",
		Long: `
Get the post POST_HASH, with up to --comments of its comments, as JSON.
`[1:],
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			if err := paramsGetPost.PostHash.Set(args[0]); err != nil {
				return fmt.Errorf("POST_HASH: %v", err)
			}
			return paramsGetPost.IsValid()
		},
		RunE: getPost,
	}
	getCmd.AddCommand(cmd)
	getCmplCmd.Sub["post"] = getPostCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub["post"] = complete.Command{}

	cmd.Flags().Uint32VarP(&paramsGetPost.CommentLimit, "comments", "c", 20,
		"Maximum number of comments to return")

	generateCmplFlags(cmd, getPostCmplCmd.Flags)
	return cmd
}()

var getPostCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
}

func getPost(cmd *cobra.Command, _ []string) error {
	var post deso.PostEntryResponse
	if useDesod(cmd) {
		if err := DesodClient.Request("get-post", paramsGetPost,
			&post); err != nil {
			return err
		}
	} else {
		var err error
		post, err = NodeClient.GetSinglePost(context.Background(),
			deso.GetSinglePost{
				PostHashHex:     *paramsGetPost.PostHash,
				ReaderPublicKey: publicKey,
				CommentLimit:    paramsGetPost.CommentLimit,
			})
		if err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
