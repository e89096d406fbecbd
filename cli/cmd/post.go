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
	"strings"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/srv"
)

var (
	paramsPost = srv.ParamsPost{ParentHash: new(deso.Bytes32)}
	postHash   deso.Bytes32
)

// postFlags are the content flags shared by post, comment and update.
func postFlags() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringSliceVar(&paramsPost.ImageURLs, "image", nil,
		"Image URL to attach, may be repeated")
	flags.StringSliceVar(&paramsPost.VideoURLs, "video", nil,
		"Video URL to attach, may be repeated")
	flags.StringToStringVar(&paramsPost.ExtraData, "extra", nil,
		"PostExtraData key=value pairs, e.g. --extra nft_type=AUTHOR")
	flags.BoolVar(&paramsPost.Hidden, "hidden", false, "Hide the post")
	flags.Uint64Var(&paramsPost.FeeRate, "fee-rate", deso.DefaultFeeRateNanosPerKB,
		"Minimum fee rate in nanos per KB")
	return flags
}

var postCmplFlags = complete.Flags{
	"--hidden": complete.PredictNothing,
}

// postCmd represents the post command
var postCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
post [--parent <post-hash>] [--image <url>]... [--video <url>]... BODY...`[1:],
		Short: "Publish a new post",
		Long: `
Publish a post with the given BODY. Multiple BODY arguments are joined with
spaces.

If --parent is set, the post is a comment on the post with that hash.

The transaction is built by --node, signed locally with the account's seed
hex, submitted and then polled for until the node reports it. A transaction
that the node accepted but never reported is printed as unconfirmed; it may
still be mined.
`[1:],
		Args:    postArgs,
		PreRunE: validatePostFlags,
		RunE:    runPost,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["post"] = postCmplCmd
	rootCmplCmd.Sub["help"].Sub["post"] = complete.Command{}

	flags := cmd.Flags()
	flags.Var(paramsPost.ParentHash, "parent", "Hash of the post to comment on")
	flags.Lookup("parent").DefValue = "none"
	flags.AddFlagSet(postFlags())

	generateCmplFlags(cmd, postCmplCmd.Flags)
	return cmd
}()

var postCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, postCmplFlags),
}

// commentCmd represents the comment command
var commentCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
comment [--image <url>]... [--video <url>]... PARENT_HASH BODY...`[1:],
		Short: "Comment on a post",
		Long: `
Publish a comment with the given BODY on the post PARENT_HASH. This is the same
as post --parent PARENT_HASH.
`[1:],
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return err
			}
			if err := paramsPost.ParentHash.Set(args[0]); err != nil {
				return fmt.Errorf("PARENT_HASH: %v", err)
			}
			return postArgs(cmd, args[1:])
		},
		PreRunE: validatePostFlags,
		RunE:    runPost,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["comment"] = commentCmplCmd
	rootCmplCmd.Sub["help"].Sub["comment"] = complete.Command{}

	cmd.Flags().AddFlagSet(postFlags())

	generateCmplFlags(cmd, commentCmplCmd.Flags)
	return cmd
}()

var commentCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, postCmplFlags),
}

// updateCmd represents the update command
var updateCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
update [--image <url>]... [--video <url>]... POST_HASH BODY...`[1:],
		Aliases: []string{"edit"},
		Short:   "Update an existing post",
		Long: `
Replace the content of the post POST_HASH with BODY and any --image, --video
and --extra data. Content that is not given again is removed.
`[1:],
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(2)(cmd, args); err != nil {
				return err
			}
			if err := postHash.Set(args[0]); err != nil {
				return fmt.Errorf("POST_HASH: %v", err)
			}
			return postArgs(cmd, args[1:])
		},
		PreRunE: validatePostFlags,
		RunE:    runPost,
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["update"] = updateCmplCmd
	rootCmplCmd.Sub["help"].Sub["update"] = complete.Command{}

	cmd.Flags().AddFlagSet(postFlags())

	generateCmplFlags(cmd, updateCmplCmd.Flags)
	return cmd
}()

var updateCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags, postCmplFlags),
}

func postArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	paramsPost.Body = strings.Join(args, " ")
	return nil
}

func validatePostFlags(cmd *cobra.Command, _ []string) error {
	params := paramsPost
	if params.ParentHash.IsZero() {
		params.ParentHash = nil
	}
	if cmd.Name() == "update" {
		return srv.ParamsUpdatePost{ParamsPost: params,
			PostHash: &postHash}.IsValid()
	}
	return params.IsValid()
}

func runPost(cmd *cobra.Command, _ []string) error {
	params := paramsPost
	if params.ParentHash.IsZero() {
		params.ParentHash = nil
	}
	update := cmd.Name() == "update"

	if useDesod(cmd) {
		method := "create-post"
		var p interface{} = params
		if update {
			method = "update-post"
			p = srv.ParamsUpdatePost{ParamsPost: params, PostHash: &postHash}
		}
		vrbLog.Debugf("Relaying %v through %v...", method,
			DesodClient.DesodServer)
		var res srv.ResultSubmission
		if err := DesodClient.Request(method, p, &res); err != nil {
			return err
		}
		printSubmission(cmd, *res.TxnHash, res.PostHash,
			res.Confirmed, res.Attempts, res.Polls)
		return nil
	}

	acct, err := account()
	if err != nil {
		return err
	}
	data, err := params.PostData(acct.PublicKey)
	if err != nil {
		return err
	}
	vrbLog.Debugf("Submitting post to %v...", NodeClient.Node)
	var sub deso.Submission
	if update {
		sub, err = NodeClient.UpdatePost(context.Background(),
			acct, postHash, data)
	} else {
		sub, err = NodeClient.CreatePost(context.Background(), acct, data)
	}
	if err != nil {
		return err
	}
	var hash *deso.Bytes32
	if sub.PostEntryResponse != nil {
		hash = &sub.PostEntryResponse.PostHashHex
	}
	printSubmission(cmd, sub.TxnHashHex, hash,
		sub.Confirmed, sub.SubmitAttempts, sub.Polls)
	return nil
}

func printSubmission(cmd *cobra.Command, txnHash deso.Bytes32, postHash *deso.Bytes32,
	confirmed bool, attempts, polls int) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Transaction:", txnHash)
	if postHash != nil {
		fmt.Fprintln(out, "Post:", postHash)
	}
	status := "confirmed"
	if !confirmed {
		status = "submitted, unconfirmed"
	}
	fmt.Fprintf(out, "Status: %v (%v submit attempts, %v polls)\n",
		status, attempts, polls)
}
