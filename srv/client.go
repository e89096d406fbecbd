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
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
)

// Client makes requests to desod's JSON RPC 2.0 API.
type Client struct {
	DesodServer string
	jrpc.Client
}

const (
	DesodDefault = "http://localhost:8078"
)

// NewClient returns a pointer to a Client for the default local desod
// endpoint. Submissions wait for confirmation, so the timeout is generous.
func NewClient() *Client {
	c := &Client{DesodServer: DesodDefault}
	c.Timeout = 3 * time.Minute
	return c
}

// Request makes a request to desod's v1 API.
func (c *Client) Request(method string, params, result interface{}) error {
	url := c.DesodServer + "/v1"
	if c.DebugRequest {
		fmt.Println("desod:", url)
	}
	return c.Client.Request(url, method, params, result)
}
