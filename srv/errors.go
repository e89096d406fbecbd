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

package srv

import (
	jrpc "github.com/AdamSLevy/jsonrpc2/v11"

	"github.com/Spatium-Labs/desod/deso"
)

var (
	ErrorNode = jrpc.NewError(-32800, "Node Error",
		"the DeSo node rejected the request or was unreachable")
	ErrorSigning = jrpc.NewError(-32801, "Signing Error",
		"the transaction could not be signed")
	ErrorTransactionFailed = jrpc.NewError(-32802, "Transaction Failed",
		"the signed transaction was not accepted")
	ErrorJournal = jrpc.NewError(-32803, "Journal Unavailable",
		"the submission journal could not be read or written")
	ErrorSubmissionNotFound = jrpc.NewError(-32804, "Submission Not Found",
		"no matching txnhash was found in the journal")
)

// desoError maps a pipeline error onto the JSON RPC error returned to the
// API client.
func desoError(err error) error {
	var rpcErr jrpc.Error
	switch deso.KindOf(err) {
	case deso.KindAccount:
		return jrpc.InvalidParams(err.Error())
	case deso.KindSigning:
		rpcErr = *ErrorSigning
	case deso.KindTransaction:
		rpcErr = *ErrorTransactionFailed
	default:
		rpcErr = *ErrorNode
	}
	rpcErr.Data = err.Error()
	return &rpcErr
}

func journalError(err error) error {
	rpcErr := *ErrorJournal
	rpcErr.Data = err.Error()
	return &rpcErr
}
