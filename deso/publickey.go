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
	"encoding/json"
	"fmt"

	"github.com/Factom-Asset-Tokens/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Network selects the base58check prefix of human readable public keys.
type Network uint8

// DeSo networks.
const (
	Mainnet Network = iota
	Testnet
)

var (
	mainnetPrefix = [3]byte{0xcd, 0x14, 0x00}
	testnetPrefix = [3]byte{0x11, 0xc2, 0x00}
)

// Prefix returns the 3 byte base58check prefix for net.
func (net Network) Prefix() [3]byte {
	if net == Testnet {
		return testnetPrefix
	}
	return mainnetPrefix
}

func (net Network) String() string {
	if net == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// PublicKeySize is the length of a compressed secp256k1 public key.
const PublicKeySize = secp256k1.PubKeyBytesLenCompressed

// PublicKey is a compressed secp256k1 public key that is encoded in its human
// readable form as a base58check string, e.g. "BC1YL...", with the prefix of
// its Network.
type PublicKey struct {
	Key     [PublicKeySize]byte
	Network Network
}

// NewPublicKey returns the PublicKey for key on net.
func NewPublicKey(key *secp256k1.PublicKey, net Network) PublicKey {
	pk := PublicKey{Network: net}
	copy(pk.Key[:], key.SerializeCompressed())
	return pk
}

// String encodes pk into its base58check form.
func (pk PublicKey) String() string {
	prefix := pk.Network.Prefix()
	return base58.CheckEncode(pk.Key[:], prefix[:]...)
}

// Set parses a base58check public key with either the mainnet or testnet
// prefix into pk.
func (pk *PublicKey) Set(str string) error {
	b, prefix, err := base58.CheckDecode(str, len(mainnetPrefix))
	if err != nil {
		return err
	}
	if len(b) != PublicKeySize {
		return fmt.Errorf("invalid length")
	}
	var net Network
	switch string(prefix) {
	case string(mainnetPrefix[:]):
		net = Mainnet
	case string(testnetPrefix[:]):
		net = Testnet
	default:
		return fmt.Errorf("invalid prefix")
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return err
	}
	copy(pk.Key[:], b)
	pk.Network = net
	return nil
}

// Type implements pflag.Value.
func (pk *PublicKey) Type() string { return "public-key" }

// ParsePublicKey parses a base58check public key.
func ParsePublicKey(str string) (PublicKey, error) {
	var pk PublicKey
	if err := pk.Set(str); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// MarshalJSON encodes pk as a JSON string using pk.String().
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

// UnmarshalJSON decodes a JSON string with a base58check public key.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%T: expected JSON string", pk)
	}
	return pk.Set(str)
}
