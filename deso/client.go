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
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/Spatium-Labs/desod/log"
)

// Client makes requests to a DeSo node's HTTP API. Client embeds an
// http.Client. Use its Timeout and Transport to configure timeouts and TLS.
//
// A Client is safe for concurrent use once configured.
type Client struct {
	Node Node
	http.Client

	// DebugRequest logs every request and response body at debug level.
	DebugRequest bool
	Log          log.Log

	// Submit governs retries of submit-transaction, and Confirm the
	// get-txn polling that follows a successful submission.
	Submit  Backoff
	Confirm Backoff
}

// DefaultTimeout is the http.Client timeout set by NewClient.
const DefaultTimeout = 20 * time.Second

// NewClient returns a pointer to a Client for node initialized with the
// default timeout and backoff policies.
func NewClient(node Node) *Client {
	c := &Client{
		Node:    node,
		Log:     log.New("deso"),
		Submit:  DefaultSubmitBackoff,
		Confirm: DefaultConfirmBackoff,
	}
	c.Timeout = DefaultTimeout
	return c
}

func (c *Client) logger() log.Log {
	if c.Log.Entry == nil {
		return log.Discard()
	}
	return c.Log
}

// Request POSTs params as JSON to the node endpoint api and unmarshals the
// response into result, which should be a pointer. A nil result discards
// the response body.
//
// The returned error is always an *Error. A non-2xx response yields an Error
// of KindNode wrapping a *NodeError.
func (c *Client) Request(ctx context.Context,
	api string, params, result interface{}) error {

	url := c.Node.Endpoint(api)
	reqBytes, err := json.Marshal(params)
	if err != nil {
		return newError(KindDecode, api, errors.Wrap(err, "json.Marshal()"))
	}
	if c.DebugRequest {
		c.logger().Debugf("%v <- %s", url, reqBytes)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(reqBytes))
	if err != nil {
		return newError(KindTransport, api, err)
	}
	req = req.WithContext(ctx)
	req.Header.Add("Content-Type", "application/json")

	res, err := c.Do(req)
	if err != nil {
		return newError(KindTransport, api, err)
	}
	defer res.Body.Close()

	resBytes, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return newError(KindTransport, api,
			errors.Wrap(err, "ioutil.ReadAll(http.Response.Body)"))
	}
	if c.DebugRequest {
		c.logger().Debugf("%v -> %v %s", url, res.StatusCode, resBytes)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newError(KindNode, api, newNodeError(api, res.StatusCode, resBytes))
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(resBytes, result); err != nil {
		return newError(KindDecode, api, errors.Wrap(err, "json.Unmarshal()"))
	}
	return nil
}

func newNodeError(api string, status int, body []byte) *NodeError {
	nodeErr := NodeError{Endpoint: api, StatusCode: status}
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil &&
		len(errBody.Error) > 0 {
		nodeErr.Message = errBody.Error
	} else {
		nodeErr.Message = string(bytes.TrimSpace(body))
	}
	return &nodeErr
}
