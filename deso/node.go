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
	"net/url"
	"strings"
)

// Node selects the DeSo node that a Client talks to. It is the node's base
// URL, scheme://host[:port], without a trailing slash.
type Node string

// Public DeSo nodes.
const (
	MainNode Node = "https://node.deso.org"
	TestNode Node = "https://test.deso.org"
)

// APIPath is the prefix of every node endpoint.
const APIPath = "/api/v0/"

// Endpoint returns the URL of the node API endpoint named api, e.g.
// "submit-post".
func (n Node) Endpoint(api string) string {
	return string(n) + APIPath + api
}

// IsTestnet returns true for TestNode.
func (n Node) IsTestnet() bool {
	return n == TestNode
}

// Network returns the public key network of n. Custom nodes are assumed to
// be mainnet nodes.
func (n Node) Network() Network {
	if n.IsTestnet() {
		return Testnet
	}
	return Mainnet
}

// String returns "main", "test", or the URL of a custom node.
func (n Node) String() string {
	switch n {
	case MainNode:
		return "main"
	case TestNode:
		return "test"
	}
	return string(n)
}

// Set parses "main", "test", or a custom node URL into n.
func (n *Node) Set(s string) error {
	switch strings.ToLower(s) {
	case "main", "mainnet":
		*n = MainNode
		return nil
	case "test", "testnet":
		*n = TestNode
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid node %q: scheme must be http or https", s)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid node %q: missing host", s)
	}
	*n = Node(strings.TrimRight(s, "/"))
	return nil
}

// Type implements pflag.Value.
func (n *Node) Type() string { return "node" }
