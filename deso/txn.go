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

package deso

import (
	"context"
	"fmt"
)

// Node API endpoint names.
const (
	EndpointSubmitPost        = "submit-post"
	EndpointAppendExtraData   = "append-extra-data"
	EndpointSignatureIndex    = "signature-index"
	EndpointSubmitTransaction = "submit-transaction"
	EndpointGetTxn            = "get-txn"
	EndpointGetSinglePost     = "get-single-post"
)

// ExtraDataDerivedPublicKey is the extra data key that marks a transaction
// as signed by a derived key.
const ExtraDataDerivedPublicKey = "DerivedPublicKey"

// TransactionHex is the request body of signature-index and
// submit-transaction, and the response of append-extra-data.
type TransactionHex struct {
	TransactionHex Bytes `json:"TransactionHex"`
}

// SubmitPostResponse is the response of submit-post.
type SubmitPostResponse struct {
	TransactionHex    Bytes   `json:"TransactionHex"`
	TxnHashHex        Bytes32 `json:"TxnHashHex"`
	TotalInputNanos   uint64  `json:"TotalInputNanos"`
	ChangeAmountNanos uint64  `json:"ChangeAmountNanos"`
	FeeNanos          uint64  `json:"FeeNanos"`
}

// SubmitTransactionResponse is the response of submit-transaction.
type SubmitTransactionResponse struct {
	TxnHashHex Bytes32 `json:"TxnHashHex"`
	// PostEntryResponse is set when the transaction created or modified a
	// post.
	PostEntryResponse *PostEntryResponse `json:"PostEntryResponse,omitempty"`
}

type extraDataParams struct {
	TransactionHex Bytes             `json:"TransactionHex"`
	ExtraData      map[string]string `json:"ExtraData"`
}

type signatureIndexResult struct {
	SignatureIndex *int `json:"SignatureIndex"`
}

type txnHashHex struct {
	TxnHashHex Bytes32 `json:"TxnHashHex"`
}

type getTxnResult struct {
	TxnFound bool `json:"TxnFound"`
}

type singlePostResult struct {
	PostFound *PostEntryResponse `json:"PostFound"`
}

// SubmitPost requests an unsigned post transaction for data.
func (c *Client) SubmitPost(ctx context.Context,
	data SubmitPostData) (SubmitPostResponse, error) {
	var res SubmitPostResponse
	if err := c.Request(ctx, EndpointSubmitPost, data, &res); err != nil {
		return SubmitPostResponse{}, err
	}
	if len(res.TransactionHex) == 0 {
		return SubmitPostResponse{}, newError(KindDecode, EndpointSubmitPost,
			fmt.Errorf("missing TransactionHex"))
	}
	return res, nil
}

// AppendExtraData returns txn with extra embedded by the node.
func (c *Client) AppendExtraData(ctx context.Context,
	txn Bytes, extra map[string]string) (Bytes, error) {
	params := extraDataParams{TransactionHex: txn, ExtraData: extra}
	var res TransactionHex
	if err := c.Request(ctx, EndpointAppendExtraData, params, &res); err != nil {
		return nil, err
	}
	if len(res.TransactionHex) == 0 {
		return nil, newError(KindDecode, EndpointAppendExtraData,
			fmt.Errorf("missing TransactionHex"))
	}
	return res.TransactionHex, nil
}

// SignatureIndex returns the offset of the signature placeholder in txn.
func (c *Client) SignatureIndex(ctx context.Context, txn Bytes) (int, error) {
	var res signatureIndexResult
	err := c.Request(ctx, EndpointSignatureIndex, TransactionHex{txn}, &res)
	if err != nil {
		return 0, err
	}
	if res.SignatureIndex == nil {
		return 0, newError(KindDecode, EndpointSignatureIndex,
			fmt.Errorf("missing SignatureIndex"))
	}
	idx := *res.SignatureIndex
	if idx < 0 || idx >= len(txn) {
		return 0, newError(KindSigning, EndpointSignatureIndex, fmt.Errorf(
			"signature index %v out of range for %v byte transaction",
			idx, len(txn)))
	}
	return idx, nil
}

// SubmitTransaction makes a single attempt to submit the signed txn.
func (c *Client) SubmitTransaction(ctx context.Context,
	txn Bytes) (SubmitTransactionResponse, error) {
	var res SubmitTransactionResponse
	err := c.Request(ctx, EndpointSubmitTransaction, TransactionHex{txn}, &res)
	if err != nil {
		return SubmitTransactionResponse{}, err
	}
	if res.TxnHashHex.IsZero() {
		return SubmitTransactionResponse{}, newError(KindDecode,
			EndpointSubmitTransaction, fmt.Errorf("missing TxnHashHex"))
	}
	return res, nil
}

// GetTxn returns whether the node has seen the transaction hash.
func (c *Client) GetTxn(ctx context.Context, hash Bytes32) (bool, error) {
	var res getTxnResult
	if err := c.Request(ctx, EndpointGetTxn, txnHashHex{hash}, &res); err != nil {
		return false, err
	}
	return res.TxnFound, nil
}

// GetSinglePost returns the post, with up to params.CommentLimit comments.
func (c *Client) GetSinglePost(ctx context.Context,
	params GetSinglePost) (PostEntryResponse, error) {
	var res singlePostResult
	if err := c.Request(ctx, EndpointGetSinglePost, params, &res); err != nil {
		return PostEntryResponse{}, err
	}
	if res.PostFound == nil {
		return PostEntryResponse{}, newError(KindNode, EndpointGetSinglePost,
			&NodeError{Endpoint: EndpointGetSinglePost, StatusCode: 200,
				Message: "post not found"})
	}
	return *res.PostFound, nil
}
