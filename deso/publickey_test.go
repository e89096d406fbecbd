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
	"fmt"
	"testing"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSeedHex        = "b5b9d1f3b4e2a6c79c6a4fe05e3fa8b0f1b1b5fb1c2d3e4f5a6b7c8d9e0f1a2b"
	testCompressedHex  = "03b9444442ea9b0d49f5a1518061fe3745d8182963e95d9c21fcc29cef57e10a1a"
	testPublicKey      = "BC1YLj2D35XFhyrazZYyfG9tn4XCshMMKGHyGKLiT7p7EGiLdzmk2Mu"
	testTestnetKey     = "tBCKY9T4FoD85mWjU8J7Jk8aTqEG1s8FM33C31eC8BvHDdJ577cr4h"
	testDerivedSeedHex = "2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b"
	testDerivedKey     = "BC1YLiVb1B2jMuSG22qfxmVqmRaK6ynVMVbuVupMdYwCxn1bsrKN8D4"
)

func TestPublicKeyFromPrivateKey(t *testing.T) {
	sk, err := deso.ParsePrivateKey(testSeedHex)
	require.NoError(t, err)
	assert := assert.New(t)

	pk := sk.PublicKey(deso.Mainnet)
	assert.Equal(testCompressedHex, fmt.Sprintf("%x", pk.Key[:]))
	assert.Equal(testPublicKey, pk.String())
	assert.Equal(testTestnetKey, sk.PublicKey(deso.Testnet).String())

	derived, err := deso.ParsePrivateKey(testDerivedSeedHex)
	require.NoError(t, err)
	assert.Equal(testDerivedKey, derived.PublicKey(deso.Mainnet).String())
}

func TestPublicKeySet(t *testing.T) {
	for _, test := range []struct {
		Name string
		Str  string
		Err  string
	}{{
		Name: "InvalidSymbol",
		Str:  "BC1YLj2D35XFhyrazZYyfG9tn4XCshMMKGHyGKLiT7p7EGiLdzmk20u",
		Err:  "invalid format: version and/or checksum bytes missing",
	}, {
		Name: "InvalidChecksum",
		Str:  "BC1YLj2D35XFhyrazZYyfG9tn4XCshMMKGHyGKLiT7p7EGiLdzmk2Mv",
		Err:  "checksum error",
	}, {
		Name: "TooShort",
		Str:  "BC1YL",
		Err:  "invalid format: version and/or checksum bytes missing",
	}} {
		t.Run(test.Name, func(t *testing.T) {
			var pk deso.PublicKey
			assert.EqualError(t, pk.Set(test.Str), test.Err)
		})
	}

	t.Run("Mainnet", func(t *testing.T) {
		pk, err := deso.ParsePublicKey(testPublicKey)
		require.NoError(t, err)
		assert.Equal(t, deso.Mainnet, pk.Network)
		assert.Equal(t, testPublicKey, pk.String())
	})
	t.Run("Testnet", func(t *testing.T) {
		pk, err := deso.ParsePublicKey(testTestnetKey)
		require.NoError(t, err)
		assert.Equal(t, deso.Testnet, pk.Network)
		assert.Equal(t, testTestnetKey, pk.String())
	})
}

func TestPublicKeyJSON(t *testing.T) {
	require := require.New(t)
	var pk deso.PublicKey
	require.EqualError(pk.UnmarshalJSON([]byte(`5`)),
		"*deso.PublicKey: expected JSON string")

	json := fmt.Sprintf("%q", testPublicKey)
	require.NoError(pk.UnmarshalJSON([]byte(json)))
	data, err := pk.MarshalJSON()
	require.NoError(err)
	require.Equal(json, string(data))
}
