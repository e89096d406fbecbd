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
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/Spatium-Labs/desod/deso"
)

// readSeedHex returns the seed hex from --seed-hex, DESO_SEED_HEX or .env,
// and otherwise prompts for it without echo.
func readSeedHex() (string, error) {
	if len(seedHex) > 0 {
		return seedHex, nil
	}
	fd := int(os.Stdin.Fd())
	if !terminal.IsTerminal(fd) {
		return "", fmt.Errorf("missing seed hex: " +
			"use --seed-hex or DESO_SEED_HEX when stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, "Seed hex: ")
	seed, err := terminal.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("terminal.ReadPassword(): %v", err)
	}
	seedHex = strings.TrimSpace(string(seed))
	return seedHex, nil
}

// account returns the account configured by the account flags.
func account() (deso.Account, error) {
	if len(publicKey) == 0 {
		return deso.Account{}, fmt.Errorf("--public-key is required")
	}
	seed, err := readSeedHex()
	if err != nil {
		return deso.Account{}, err
	}
	return deso.NewAccountBuilder().
		PublicKey(publicKey).
		SeedHex(seed).
		DerivedPublicKey(derivedPublicKey).
		Node(NodeClient.Node).
		Build()
}
