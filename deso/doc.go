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

// Package deso is a client for the DeSo blockchain's HTTP node API.
//
// A Client assembles transactions on a node, signs them locally with an
// Account's secp256k1 private key, submits them and then polls the node until
// the transaction is found.
//
// The lifecycle of a post is:
//
//	submit-post -> [append-extra-data] -> signature-index -> sign ->
//	submit-transaction -> get-txn...
//
// append-extra-data is only used when the Account signs with a derived key.
// submit-transaction is retried per Client.Submit on network failure, and
// get-txn is polled per Client.Confirm. A Submission that was never found by
// get-txn is returned with Confirmed == false rather than an error.
//
// Every error returned by this package is an *Error whose Kind reports which
// step failed. Malformed hex, invalid private keys and out of range signature
// indexes are returned as KindSigning errors.
//
// The Bytes and Bytes32 types marshal to and from the hex strings used on the
// wire. PublicKey handles base58check public keys.
package deso
