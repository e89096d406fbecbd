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
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// PrivateKeySize is the length of a secp256k1 private key.
const PrivateKeySize = secp256k1.PrivKeyBytesLen

// PrivateKey is a secp256k1 private key, either an account's seed key or a
// derived private key.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// ParsePrivateKey parses seedHex, the 64 character hex encoding of a private
// key. The key must be a non-zero scalar less than the curve order.
func ParsePrivateKey(seedHex string) (PrivateKey, error) {
	sk, err := decodePrivateKey(seedHex)
	if err != nil {
		return PrivateKey{}, newError(KindSigning, "seed hex", err)
	}
	return sk, nil
}

// NewPrivateKey returns the PrivateKey for the raw 32 byte scalar b.
func NewPrivateKey(b []byte) (PrivateKey, error) {
	sk, err := newPrivateKey(b)
	if err != nil {
		return PrivateKey{}, newError(KindSigning, "private key", err)
	}
	return sk, nil
}

func decodePrivateKey(seedHex string) (PrivateKey, error) {
	b, err := hex.DecodeString(seedHex)
	if err != nil {
		return PrivateKey{}, err
	}
	return newPrivateKey(b)
}

func newPrivateKey(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return PrivateKey{}, fmt.Errorf("invalid length: %v bytes, expected %v",
			len(b), PrivateKeySize)
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return PrivateKey{}, fmt.Errorf("scalar exceeds curve order")
	}
	if s.IsZero() {
		return PrivateKey{}, fmt.Errorf("scalar is zero")
	}
	return PrivateKey{key: secp256k1.NewPrivateKey(&s)}, nil
}

// IsZero returns true if sk has not been initialized.
func (sk PrivateKey) IsZero() bool { return sk.key == nil }

// PublicKey returns the PublicKey of sk on net.
func (sk PrivateKey) PublicKey(net Network) PublicKey {
	return NewPublicKey(sk.key.PubKey(), net)
}

// Sign returns the DER encoded ECDSA signature of hash. Nonces are
// deterministic per RFC 6979 and S is canonicalized to its low form.
func (sk PrivateKey) Sign(hash []byte) []byte {
	return ecdsa.Sign(sk.key, hash).Serialize()
}

// String redacts the key.
func (sk PrivateKey) String() string {
	return "<redacted>"
}
