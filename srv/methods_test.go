package srv

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/flag"
	"github.com/Spatium-Labs/desod/journal"
	_log "github.com/Spatium-Labs/desod/log"
)

const (
	testAPIAddress = "localhost:18888"

	testPublicKey = "BC1YLj2D35XFhyrazZYyfG9tn4XCshMMKGHyGKLiT7p7EGiLdzmk2Mu"
	testSeedHex   = "b5b9d1f3b4e2a6c79c6a4fe05e3fa8b0f1b1b5fb1c2d3e4f5a6b7c8d9e0f1a2b"

	testUnsignedHex = "0102030405060700a0b0c0"
	testSigIndex    = 7
	testSignedHex   = "01020304050607" + "46" +
		"3044022046b8be8e5018b6f5f0766f59bc934d99e180cc41cc89af505dae222053b09e1b" +
		"0220593f52ca2566d4e10220f726adc3eeef422f9dca046596cb230c1685c5321618" +
		"a0b0c0"
)

var (
	testTxnHash  = *deso.NewBytes32([]byte{0xab, 0xcd})
	testPostHash = *deso.NewBytes32([]byte{0x99})
)

// mockNode answers the DeSo node endpoints with fixed responses. While
// Reject is set, submit-transaction fails with 400.
type mockNode struct {
	mu        sync.Mutex
	Reject    bool
	Found     bool
	Submitted []string
}

func (m *mockNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var req map[string]json.RawMessage
	body, _ := ioutil.ReadAll(r.Body)
	json.Unmarshal(body, &req)
	reply := func(v interface{}) { json.NewEncoder(w).Encode(v) }
	post := deso.PostEntryResponse{PostHashHex: testPostHash,
		PosterPublicKey: testPublicKey, Body: "hello"}
	switch strings.TrimPrefix(r.URL.Path, deso.APIPath) {
	case deso.EndpointSubmitPost:
		reply(map[string]interface{}{"TransactionHex": testUnsignedHex})
	case deso.EndpointSignatureIndex:
		reply(map[string]interface{}{"SignatureIndex": testSigIndex})
	case deso.EndpointSubmitTransaction:
		if m.Reject {
			w.WriteHeader(http.StatusBadRequest)
			reply(map[string]interface{}{"error": "insufficient balance"})
			return
		}
		var txn string
		json.Unmarshal(req["TransactionHex"], &txn)
		m.Submitted = append(m.Submitted, txn)
		reply(map[string]interface{}{"TxnHashHex": testTxnHash,
			"PostEntryResponse": post})
	case deso.EndpointGetTxn:
		reply(map[string]interface{}{"TxnFound": m.Found})
	case deso.EndpointGetSinglePost:
		var hash deso.Bytes32
		hash.UnmarshalJSON(req["PostHashHex"])
		if hash != testPostHash {
			reply(map[string]interface{}{"PostFound": nil})
			return
		}
		reply(map[string]interface{}{"PostFound": post})
	default:
		http.NotFound(w, r)
	}
}

func (m *mockNode) set(reject, found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reject, m.Found = reject, found
}

var methodParamsTests = []struct {
	Method      string
	Params      interface{}
	Description string
	Err         *jrpc.Error
}{{
	Method:      "create-post",
	Params:      nil,
	Description: "nil params",
	Err:         jrpc.InvalidParams(""),
}, {
	Method: "create-post",
	Params: struct {
		ParamsPost
		NewField string
	}{ParamsPost: ParamsPost{Body: "hello"}, NewField: "hello"},
	Description: "unknown field",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "create-post",
	Params:      ParamsPost{Hidden: true},
	Description: "no body or media",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "create-post",
	Params:      ParamsPost{Body: "hello", ParentHash: new(deso.Bytes32)},
	Description: "zero parent hash",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "update-post",
	Params:      ParamsPost{Body: "hello"},
	Description: "missing post hash",
	Err:         jrpc.InvalidParams(""),
}, {
	Method: "update-post",
	Params: ParamsUpdatePost{PostHash: &testPostHash,
		ParamsPost: ParamsPost{Body: "hello", ParentHash: &testPostHash}},
	Description: "comment and modify",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "get-post",
	Params:      ParamsGetPost{},
	Description: "missing post hash",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "get-post",
	Params:      ParamsGetPost{PostHash: &testTxnHash},
	Description: "post not found",
	Err:         ErrorNode,
}, {
	Method:      "sign-transaction",
	Params:      ParamsSignTransaction{},
	Description: "missing tx",
	Err:         jrpc.InvalidParams(""),
}, {
	Method: "sign-transaction",
	Params: struct {
		Tx             string `json:"tx"`
		SignatureIndex int    `json:"signatureindex"`
	}{Tx: testUnsignedHex, SignatureIndex: 11},
	Description: "signature index out of range",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "get-submissions",
	Params:      ParamsGetSubmissions{Limit: 1001},
	Description: "limit too large",
	Err:         jrpc.InvalidParams(""),
}, {
	Method:      "check-submission",
	Params:      ParamsCheckSubmission{TxnHash: &testPostHash},
	Description: "not journaled",
	Err:         ErrorSubmissionNotFound,
}, {
	Method:      "get-daemon-properties",
	Params:      ParamsGetSubmissions{},
	Description: "params not accepted",
	Err:         jrpc.InvalidParams(""),
},
}

func TestMethods(t *testing.T) {
	_log.LogDebug = false
	node := &mockNode{}
	nodeSrv := httptest.NewServer(node)
	defer nodeSrv.Close()

	dir, err := ioutil.TempDir("", "desod-srv")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	j, err := journal.Open(filepath.Join(dir, "journal.sqlite3"))
	require.NoError(t, err)
	defer j.Close()

	acct, err := deso.NewAccountBuilder().
		PublicKey(testPublicKey).
		SeedHex(testSeedHex).
		Node(deso.Node(nodeSrv.URL)).
		Build()
	require.NoError(t, err)
	c := deso.NewClient(deso.Node(nodeSrv.URL))
	c.Log = _log.Discard()
	c.Submit = deso.Backoff{Attempts: 2, Base: time.Millisecond}
	c.Confirm = deso.Backoff{Attempts: 2, Base: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := Start(ctx, Config{Address: testAPIAddress,
		Account: acct, Client: c, Journal: j})
	require.NotNil(t, done)
	defer func() {
		cancel()
		<-done
	}()

	cli := NewClient()
	cli.DesodServer = "http://" + testAPIAddress
	cli.Timeout = 5 * time.Second
	// Wait for the server to start listening.
	require.Eventually(t, func() bool {
		return cli.Request("get-daemon-properties", nil, nil) == nil
	}, time.Second, 10*time.Millisecond)

	t.Run("params", func(t *testing.T) {
		assert := assert.New(t)
		for _, test := range methodParamsTests {
			err := cli.Request(test.Method, test.Params, nil)
			rpcErr, ok := err.(jrpc.Error)
			if !assert.Truef(ok, "%v: %v: %v",
				test.Method, test.Description, err) {
				continue
			}
			assert.Equal(test.Err.Code, rpcErr.Code,
				"%v: %v", test.Method, test.Description)
		}
	})

	t.Run("get-daemon-properties", func(t *testing.T) {
		var res ResultGetDaemonProperties
		require.NoError(t, cli.Request("get-daemon-properties", nil, &res))
		assert.Equal(t, flag.Revision, res.DesodVersion)
		assert.Equal(t, APIVersion, res.APIVersion)
		assert.Equal(t, nodeSrv.URL, res.Node)
		assert.Equal(t, testPublicKey, res.PublicKey)
		assert.Empty(t, res.DerivedPublicKey)
	})

	t.Run("create-post unconfirmed", func(t *testing.T) {
		node.set(false, false)
		var res ResultSubmission
		require.NoError(t, cli.Request("create-post",
			ParamsPost{Body: "hello"}, &res))
		assert.False(t, res.Confirmed)
		assert.Equal(t, 2, res.Polls)
		assert.Equal(t, 1, res.Attempts)
		assert.Equal(t, journal.TypePost, res.Type)
		require.NotNil(t, res.TxnHash)
		assert.Equal(t, testTxnHash, *res.TxnHash)
		require.NotNil(t, res.Post)
		assert.Equal(t, testPostHash, res.Post.PostHashHex)
		assert.NotZero(t, res.ID)
		assert.Contains(t, node.Submitted, testSignedHex)
	})

	t.Run("check-submission", func(t *testing.T) {
		node.set(false, true)
		var res journal.Submission
		require.NoError(t, cli.Request("check-submission",
			ParamsCheckSubmission{TxnHash: &testTxnHash}, &res))
		assert.True(t, res.Confirmed)

		sub, ok, err := j.Get(testTxnHash)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, sub.Confirmed)
	})

	t.Run("get-submissions", func(t *testing.T) {
		var subs []journal.Submission
		require.NoError(t, cli.Request("get-submissions",
			ParamsGetSubmissions{}, &subs))
		require.Len(t, subs, 1)
		assert.Equal(t, testPublicKey, subs[0].Publisher)

		require.NoError(t, cli.Request("get-submissions",
			ParamsGetSubmissions{Unconfirmed: true}, &subs))
		assert.Empty(t, subs)
	})

	t.Run("update-post rejected", func(t *testing.T) {
		node.set(true, true)
		err := cli.Request("update-post", ParamsUpdatePost{
			PostHash:   &testPostHash,
			ParamsPost: ParamsPost{Body: "edited"}}, nil)
		rpcErr, ok := err.(jrpc.Error)
		require.Truef(t, ok, "%v", err)
		assert.Equal(t, ErrorTransactionFailed.Code, rpcErr.Code)
		assert.Contains(t, rpcErr.Data, "insufficient balance")
	})

	t.Run("get-post", func(t *testing.T) {
		var post deso.PostEntryResponse
		require.NoError(t, cli.Request("get-post",
			ParamsGetPost{PostHash: &testPostHash}, &post))
		assert.Equal(t, "hello", post.Body)
	})

	t.Run("sign-transaction", func(t *testing.T) {
		var tx deso.Bytes
		require.NoError(t, tx.Set(testUnsignedHex))
		var res ResultSignTransaction
		require.NoError(t, cli.Request("sign-transaction",
			ParamsSignTransaction{Tx: tx}, &res))
		assert.Equal(t, testSignedHex, res.Tx.String())

		idx := testSigIndex
		res = ResultSignTransaction{}
		require.NoError(t, cli.Request("sign-transaction",
			ParamsSignTransaction{Tx: tx, SignatureIndex: &idx}, &res))
		assert.Equal(t, testSignedHex, res.Tx.String())
	})

	t.Run("headers and metrics", func(t *testing.T) {
		res, err := http.Post("http://"+testAPIAddress+"/v1", "application/json",
			strings.NewReader(`{"jsonrpc":"2.0","method":"get-daemon-properties","id":1}`))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, flag.Revision, res.Header.Get("Desod-Version"))
		assert.Equal(t, APIVersion, res.Header.Get("Desod-Api-Version"))

		res, err = http.Get("http://" + testAPIAddress + "/metrics")
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := ioutil.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `desod_requests_total{method="create-post"}`)
		assert.Contains(t, string(body),
			`desod_submissions_total{confirmed="false",type="post"} 1`)
	})
}
