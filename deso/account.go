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
)

// Account holds the credentials used to sign transactions.
type Account struct {
	// PublicKey is the account's base58check public key.
	PublicKey string
	// DerivedPublicKey is set when SeedHex holds a derived private key,
	// which is recommended over the account's own seed.
	DerivedPublicKey string
	// Node is the node the account transacts on.
	Node Node

	key PrivateKey
}

// PrivateKey returns the account's signing key.
func (a Account) PrivateKey() PrivateKey { return a.key }

// HasDerivedKey returns true if the account signs with a derived key.
func (a Account) HasDerivedKey() bool { return len(a.DerivedPublicKey) > 0 }

// String returns the public key and node. The private key is never printed.
func (a Account) String() string {
	if a.HasDerivedKey() {
		return fmt.Sprintf("%v (derived %v) on %v",
			a.PublicKey, a.DerivedPublicKey, a.Node)
	}
	return fmt.Sprintf("%v on %v", a.PublicKey, a.Node)
}

// AccountBuilder builds an Account. The zero value is not ready for use, use
// NewAccountBuilder.
type AccountBuilder struct {
	publicKey        string
	seedHex          string
	derivedPublicKey string
	node             Node
}

// NewAccountBuilder returns an AccountBuilder targeting MainNode.
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{node: MainNode}
}

// PublicKey sets the account's public key.
func (b *AccountBuilder) PublicKey(publicKey string) *AccountBuilder {
	b.publicKey = publicKey
	return b
}

// SeedHex sets either the account's seed hex or a derived private key.
func (b *AccountBuilder) SeedHex(seedHex string) *AccountBuilder {
	b.seedHex = seedHex
	return b
}

// DerivedPublicKey sets the derived public key, which is required when
// SeedHex is a derived private key.
func (b *AccountBuilder) DerivedPublicKey(key string) *AccountBuilder {
	b.derivedPublicKey = key
	return b
}

// Node sets the node the account transacts on.
func (b *AccountBuilder) Node(node Node) *AccountBuilder {
	b.node = node
	return b
}

// Build validates the credentials and returns the Account.
func (b *AccountBuilder) Build() (Account, error) {
	if len(b.publicKey) == 0 {
		return Account{}, newError(KindAccount, "build",
			fmt.Errorf("missing public key"))
	}
	if len(b.seedHex) == 0 {
		return Account{}, newError(KindAccount, "build",
			fmt.Errorf("missing seed hex or derived private key"))
	}
	if _, err := ParsePublicKey(b.publicKey); err != nil {
		return Account{}, newError(KindAccount, "public key", err)
	}
	if len(b.derivedPublicKey) > 0 {
		if _, err := ParsePublicKey(b.derivedPublicKey); err != nil {
			return Account{}, newError(KindAccount,
				"derived public key", err)
		}
	}
	key, err := decodePrivateKey(b.seedHex)
	if err != nil {
		return Account{}, newError(KindSigning, "seed hex", err)
	}
	node := b.node
	if len(node) == 0 {
		node = MainNode
	}
	return Account{
		PublicKey:        b.publicKey,
		DerivedPublicKey: b.derivedPublicKey,
		Node:             node,
		key:              key,
	}, nil
}
