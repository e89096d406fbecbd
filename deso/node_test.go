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

package deso_test

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/log"
	"github.com/stretchr/testify/assert"
)

// mockNode implements the node endpoints used by deso.Client.
type mockNode struct {
	t *testing.T

	mu    sync.Mutex
	calls []string

	// Unsigned is returned by submit-post. Derived is returned by
	// append-extra-data.
	Unsigned deso.Bytes
	Derived  deso.Bytes

	// SubmitFailures is the number of submit-transaction requests that
	// fail with SubmitStatus before one succeeds.
	SubmitFailures int
	SubmitStatus   int
	Submitted      deso.Bytes

	// FoundAfter is the number of get-txn polls that report false before
	// one reports true. Negative means never.
	FoundAfter int
	polls      int

	ExtraData map[string]string
	TxnHash   deso.Bytes32
	Post      deso.PostEntryResponse
}

func newMockNode(t *testing.T) (*mockNode, *httptest.Server) {
	var unsigned, derived deso.Bytes
	unsigned.Set(testUnsignedHex)
	// The derived transaction grows extra data after the placeholder.
	derived.Set(testUnsignedHex + "ee")
	m := &mockNode{t: t,
		Unsigned:     unsigned,
		Derived:      derived,
		SubmitStatus: http.StatusServiceUnavailable,
		TxnHash:      *deso.NewBytes32([]byte{0xab, 0xcd}),
	}
	m.Post = deso.PostEntryResponse{
		PostHashHex:     *deso.NewBytes32([]byte{0x99}),
		PosterPublicKey: testPublicKey,
		Body:            "Testing the new deso go library!",
	}
	return m, httptest.NewServer(m)
}

func (m *mockNode) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	api := strings.TrimPrefix(r.URL.Path, deso.APIPath)
	m.calls = append(m.calls, api)
	assert.Equal(m.t, http.MethodPost, r.Method)
	assert.Equal(m.t, "application/json", r.Header.Get("Content-Type"))

	body, _ := ioutil.ReadAll(r.Body)
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, `{"error": "bad json"}`, http.StatusBadRequest)
		return
	}
	txn := func() deso.Bytes {
		var b deso.Bytes
		b.UnmarshalJSON(req["TransactionHex"])
		return b
	}
	reply := func(v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	switch api {
	case deso.EndpointSubmitPost:
		reply(map[string]interface{}{
			"TransactionHex": m.Unsigned,
			"TxnHashHex":     m.TxnHash,
			"FeeNanos":       168,
		})
	case deso.EndpointAppendExtraData:
		json.Unmarshal(req["ExtraData"], &m.ExtraData)
		assert.Equal(m.t, m.Unsigned, txn())
		reply(map[string]interface{}{"TransactionHex": m.Derived})
	case deso.EndpointSignatureIndex:
		// The placeholder is at the same offset in Unsigned and Derived.
		reply(map[string]interface{}{"SignatureIndex": testSigIndex})
	case deso.EndpointSubmitTransaction:
		if m.SubmitFailures > 0 {
			m.SubmitFailures--
			w.WriteHeader(m.SubmitStatus)
			w.Write([]byte(`{"error": "node unavailable"}`))
			return
		}
		m.Submitted = txn()
		post := m.Post
		reply(map[string]interface{}{
			"TxnHashHex":        m.TxnHash,
			"PostEntryResponse": post,
		})
	case deso.EndpointGetTxn:
		var hash deso.Bytes32
		hash.UnmarshalJSON(req["TxnHashHex"])
		assert.Equal(m.t, m.TxnHash, hash)
		found := m.FoundAfter >= 0 && m.polls >= m.FoundAfter
		m.polls++
		reply(map[string]interface{}{"TxnFound": found})
	case deso.EndpointGetSinglePost:
		var hash deso.Bytes32
		hash.UnmarshalJSON(req["PostHashHex"])
		if hash != m.Post.PostHashHex {
			reply(map[string]interface{}{"PostFound": nil})
			return
		}
		reply(map[string]interface{}{"PostFound": m.Post})
	default:
		http.NotFound(w, r)
	}
}

// newTestClient returns a Client for srv with millisecond backoffs.
func newTestClient(srv *httptest.Server) *deso.Client {
	c := deso.NewClient(deso.Node(srv.URL))
	c.Log = log.Discard()
	c.Submit = deso.Backoff{Attempts: 3, Base: time.Millisecond}
	c.Confirm = deso.Backoff{Attempts: 7, Base: time.Millisecond,
		Max: 4 * time.Millisecond}
	return c
}
