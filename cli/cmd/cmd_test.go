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

package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spatium-Labs/desod/deso"
	_log "github.com/Spatium-Labs/desod/log"
	"github.com/Spatium-Labs/desod/srv"
)

const (
	testPublicKey  = "BC1YLj2D35XFhyrazZYyfG9tn4XCshMMKGHyGKLiT7p7EGiLdzmk2Mu"
	testTestnetKey = "tBCKY9T4FoD85mWjU8J7Jk8aTqEG1s8FM33C31eC8BvHDdJ577cr4h"
	testSeedHex    = "b5b9d1f3b4e2a6c79c6a4fe05e3fa8b0f1b1b5fb1c2d3e4f5a6b7c8d9e0f1a2b"

	testUnsignedHex = "0102030405060700a0b0c0"
	testSignedHex   = "01020304050607" + "46" +
		"3044022046b8be8e5018b6f5f0766f59bc934d99e180cc41cc89af505dae222053b09e1b" +
		"0220593f52ca2566d4e10220f726adc3eeef422f9dca046596cb230c1685c5321618" +
		"a0b0c0"
)

var (
	testTxnHash  = *deso.NewBytes32([]byte{0xab, 0xcd})
	testPostHash = *deso.NewBytes32([]byte{0x99})
)

// testNode answers the node endpoints used by post and sign and records the
// submit-post requests it receives.
type testNode struct {
	posts []map[string]json.RawMessage
}

func (n *testNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req map[string]json.RawMessage
	body, _ := ioutil.ReadAll(r.Body)
	json.Unmarshal(body, &req)
	reply := func(v interface{}) { json.NewEncoder(w).Encode(v) }
	switch strings.TrimPrefix(r.URL.Path, deso.APIPath) {
	case deso.EndpointSubmitPost:
		n.posts = append(n.posts, req)
		reply(map[string]interface{}{"TransactionHex": testUnsignedHex})
	case deso.EndpointSignatureIndex:
		reply(map[string]interface{}{"SignatureIndex": 7})
	case deso.EndpointSubmitTransaction:
		reply(map[string]interface{}{"TxnHashHex": testTxnHash,
			"PostEntryResponse": deso.PostEntryResponse{
				PostHashHex: testPostHash, Body: "hello world"}})
	case deso.EndpointGetTxn:
		reply(map[string]interface{}{"TxnFound": true})
	default:
		http.NotFound(w, r)
	}
}

// resetFlags clears all state left by a previous execution of rootCmd.
func resetFlags() {
	var visit func(*cobra.Command)
	visit = func(cmd *cobra.Command) {
		reset := func(flg *flag.Flag) { flg.Changed = false }
		cmd.Flags().VisitAll(reset)
		cmd.PersistentFlags().VisitAll(reset)
		for _, sub := range cmd.Commands() {
			visit(sub)
		}
	}
	visit(rootCmd)

	NodeClient.Node = deso.MainNode
	NodeClient.Log = _log.Discard()
	NodeClient.Submit = deso.Backoff{Attempts: 2, Base: time.Millisecond}
	NodeClient.Confirm = deso.Backoff{Attempts: 2, Base: time.Millisecond}
	publicKey, derivedPublicKey, seedHex = "", "", ""
	paramsPost = srv.ParamsPost{ParentHash: paramsPost.ParentHash,
		FeeRate: deso.DefaultFeeRateNanosPerKB}
	*paramsPost.ParentHash = deso.Bytes32{}
	postHash = deso.Bytes32{}
	sigIndex = 0
}

func execute(args ...string) (string, error) {
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOutput(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSign(t *testing.T) {
	out, err := execute("sign", "--index", "7",
		"--public-key", testPublicKey, "--seed-hex", testSeedHex,
		testUnsignedHex)
	require.NoError(t, err)
	assert.Equal(t, testSignedHex+"\n", out)

	_, err = execute("sign", "--index", "11",
		"--public-key", testPublicKey, "--seed-hex", testSeedHex,
		testUnsignedHex)
	assert.Equal(t, deso.KindSigning, deso.KindOf(err))

	_, err = execute("sign", "--index", "7",
		"--public-key", testPublicKey, "--seed-hex", testSeedHex, "zz")
	assert.EqualError(t, err, "TX_HEX: encoding/hex: invalid byte: U+007A 'z'")
}

func TestPubkey(t *testing.T) {
	out, err := execute("pubkey", "--seed-hex", testSeedHex)
	require.NoError(t, err)
	assert.Equal(t, testPublicKey+"\n", out)

	out, err = execute("pubkey", "--node", "test", "--seed-hex", testSeedHex)
	require.NoError(t, err)
	assert.Equal(t, testTestnetKey+"\n", out)
}

func TestPost(t *testing.T) {
	node := &testNode{}
	nodeSrv := httptest.NewServer(node)
	defer nodeSrv.Close()

	out, err := execute("post", "--node", nodeSrv.URL,
		"--public-key", testPublicKey, "--seed-hex", testSeedHex,
		"--extra", "nft_type=AUTHOR", "--image", "https://images.deso.org/a.png",
		"hello", "world")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction: "+testTxnHash.String())
	assert.Contains(t, out, "Post: "+testPostHash.String())
	assert.Contains(t, out, "Status: confirmed (1 submit attempts, 1 polls)")

	require.Len(t, node.posts, 1)
	assert.JSONEq(t, `{"Body":"hello world","ImageURLs":["https://images.deso.org/a.png"]}`,
		string(node.posts[0]["BodyObj"]))
	assert.JSONEq(t, `{"nft_type":"AUTHOR"}`, string(node.posts[0]["PostExtraData"]))
	assert.Nil(t, node.posts[0]["ParentStakeID"])

	_, err = execute("comment", "--node", nodeSrv.URL,
		"--public-key", testPublicKey, "--seed-hex", testSeedHex,
		testPostHash.String(), "nice")
	require.NoError(t, err)
	require.Len(t, node.posts, 2)
	assert.JSONEq(t, `"`+testPostHash.String()+`"`,
		string(node.posts[1]["ParentStakeID"]))

	_, err = execute("update", "--node", nodeSrv.URL,
		"--public-key", testPublicKey, "--seed-hex", testSeedHex,
		testPostHash.String(), "edited")
	require.NoError(t, err)
	require.Len(t, node.posts, 3)
	assert.JSONEq(t, `"`+testPostHash.String()+`"`,
		string(node.posts[2]["PostHashHexToModify"]))
}

func TestPostErrors(t *testing.T) {
	for _, test := range []struct {
		Name string
		Args []string
		Err  string
	}{{
		Name: "no body",
		Args: []string{"post"},
		Err:  "requires at least 1 arg(s), only received 0",
	}, {
		Name: "bad post hash",
		Args: []string{"update", "1234", "edited"},
		Err:  "POST_HASH: invalid length",
	}, {
		Name: "missing public key",
		Args: []string{"post", "--seed-hex", testSeedHex, "hello"},
		Err:  "--public-key is required",
	}} {
		t.Run(test.Name, func(t *testing.T) {
			_, err := execute(test.Args...)
			assert.EqualError(t, err, test.Err)
		})
	}
}

func TestApplyConfig(t *testing.T) {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	var node deso.Node = deso.MainNode
	var key string
	flags.Var(&node, "node", "")
	flags.StringVar(&key, "public-key", "", "")
	require.NoError(t, flags.Parse([]string{"--public-key", "from-flag"}))

	viper.Set("node", "test")
	viper.Set("public-key", "from-config")
	defer viper.Reset()

	require.NoError(t, applyConfig(flags))
	assert.Equal(t, deso.TestNode, node)
	assert.Equal(t, "from-flag", key)

	viper.Set("node", "ftp://node")
	assert.EqualError(t, applyConfig(flags),
		`config node: invalid node "ftp://node": scheme must be http or https`)
}
