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
	"net/http"

	"github.com/pkg/errors"
)

// Submission is the outcome of submitting a signed transaction.
type Submission struct {
	SubmitTransactionResponse

	// Confirmed is false if the node did not report the transaction as
	// found before the Confirm policy was exhausted. The node did accept
	// the transaction, so it may still land: submitted, unconfirmed.
	Confirmed bool

	SubmitAttempts int
	Polls          int
}

// Sign prepares txn for acct and signs it. If acct uses a derived key, the
// DerivedPublicKey extra data is first appended by the node. The signature
// index is then requested from the node and the transaction signed locally.
func (c *Client) Sign(ctx context.Context, acct Account, txn Bytes) (Bytes, error) {
	if acct.HasDerivedKey() {
		var err error
		txn, err = c.AppendExtraData(ctx, txn, map[string]string{
			ExtraDataDerivedPublicKey: acct.DerivedPublicKey})
		if err != nil {
			return nil, err
		}
	}
	idx, err := c.SignatureIndex(ctx, txn)
	if err != nil {
		return nil, err
	}
	return SignTransaction(txn, acct.PrivateKey(), idx)
}

// SignAndSubmit signs the unsigned txn for acct, submits it according to
// c.Submit and then polls for it according to c.Confirm.
//
// Exhausting c.Confirm is not an error. Check Submission.Confirmed.
func (c *Client) SignAndSubmit(ctx context.Context,
	acct Account, txn Bytes) (Submission, error) {
	signed, err := c.Sign(ctx, acct, txn)
	if err != nil {
		return Submission{}, err
	}
	res, attempts, err := c.submit(ctx, signed)
	sub := Submission{SubmitTransactionResponse: res, SubmitAttempts: attempts}
	if err != nil {
		return sub, err
	}
	sub.Confirmed, sub.Polls, err = c.confirm(ctx, res.TxnHashHex)
	if err != nil {
		return sub, err
	}
	if !sub.Confirmed {
		c.logger().Warnf("Transaction %v submitted but unconfirmed after %v polls",
			res.TxnHashHex, sub.Polls)
	}
	return sub, nil
}

// CreatePost submits data as a post, a comment or an update and signs it
// with acct.
func (c *Client) CreatePost(ctx context.Context,
	acct Account, data SubmitPostData) (Submission, error) {
	res, err := c.SubmitPost(ctx, data)
	if err != nil {
		return Submission{}, err
	}
	c.logger().Debugf("Post transaction %v: fee %v nanos",
		res.TxnHashHex, res.FeeNanos)
	return c.SignAndSubmit(ctx, acct, res.TransactionHex)
}

// UpdatePost modifies the post postHash with data.
func (c *Client) UpdatePost(ctx context.Context, acct Account,
	postHash Bytes32, data SubmitPostData) (Submission, error) {
	if data.IsComment() {
		return Submission{}, newError(KindAccount, EndpointSubmitPost,
			fmt.Errorf("a post may not both comment and modify"))
	}
	data.PostHashHexToModify = postHash.String()
	return c.CreatePost(ctx, acct, data)
}

// submit attempts submit-transaction until it succeeds, fails for a reason
// other than the network or the node being unavailable, or c.Submit is
// exhausted. It returns the number of attempts made.
func (c *Client) submit(ctx context.Context,
	signed Bytes) (SubmitTransactionResponse, int, error) {
	attempts := c.Submit.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		res, err := c.SubmitTransaction(ctx, signed)
		if err == nil {
			return res, i, nil
		}
		lastErr = err
		c.logger().Warnf("%v attempt %v/%v: %v",
			EndpointSubmitTransaction, i, attempts, err)
		if !retryable(err) {
			return SubmitTransactionResponse{}, i,
				newError(KindTransaction, EndpointSubmitTransaction, err)
		}
		if i == attempts {
			break
		}
		if err := c.Submit.Sleep(ctx, i); err != nil {
			return SubmitTransactionResponse{}, i,
				newError(KindTransaction, EndpointSubmitTransaction, err)
		}
	}
	return SubmitTransactionResponse{}, attempts,
		newError(KindTransaction, EndpointSubmitTransaction,
			errors.Wrapf(lastErr, "failed after %v attempts", attempts))
}

// retryable returns true for transport failures and 5xx node responses.
func retryable(err error) bool {
	switch KindOf(err) {
	case KindTransport:
		return true
	case KindNode:
		var nodeErr *NodeError
		if errors.As(err, &nodeErr) {
			return nodeErr.StatusCode >= http.StatusInternalServerError
		}
	}
	return false
}

// confirm polls get-txn for hash, sleeping before each poll. Failed polls
// count as misses. The only error returned is from ctx.
func (c *Client) confirm(ctx context.Context, hash Bytes32) (bool, int, error) {
	n := 0
	for ; n < c.Confirm.Attempts; n++ {
		if err := c.Confirm.Sleep(ctx, n); err != nil {
			return false, n, newError(KindTransaction, EndpointGetTxn, err)
		}
		found, err := c.GetTxn(ctx, hash)
		if err != nil {
			c.logger().Debugf("%v poll %v: %v", EndpointGetTxn, n+1, err)
			continue
		}
		if found {
			return true, n + 1, nil
		}
	}
	return false, n, nil
}
