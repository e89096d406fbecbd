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
	"fmt"

	"github.com/pkg/errors"
)

// Kind categorizes an Error by the step of the transaction lifecycle that
// failed.
type Kind uint8

// Error kinds.
const (
	KindUnknown Kind = iota
	KindAccount
	KindTransport
	KindDecode
	KindNode
	KindSigning
	KindTransaction
)

func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindNode:
		return "node"
	case KindSigning:
		return "signing"
	case KindTransaction:
		return "transaction"
	}
	return "unknown"
}

// Error is returned by every Client method and by SignTransaction. Op names
// the failed operation, usually the node endpoint.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("deso: %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("deso: %v: %v: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *Error) Cause() error { return e.Err }

func newError(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NodeError is a non-2xx response from a DeSo node.
type NodeError struct {
	Endpoint   string
	StatusCode int
	// Message is the node's "error" field, or the raw body if the body is
	// not a JSON error object.
	Message string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%v: http %v: %v", e.Endpoint, e.StatusCode, e.Message)
}
