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
	"database/sql"
	"database/sql/driver"
	"encoding/hex"
	"fmt"
)

// Bytes32 is a 32 byte hash, such as a TxnHashHex or PostHashHex, which
// marshals to and from a JSON hex string.
type Bytes32 [32]byte

// NewBytes32 returns a Bytes32 populated with the first 32 bytes of s32.
func NewBytes32(s32 []byte) *Bytes32 {
	b32 := new(Bytes32)
	copy(b32[:], s32)
	return b32
}

// String returns the hex encoding of b.
func (b Bytes32) String() string {
	return hex.EncodeToString(b[:])
}

// IsZero returns true if b is all zeros.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// Type returns "hash" for use as a pflag.Value.
func (b *Bytes32) Type() string { return "hash" }

// Set decodes the hex string s into b.
func (b *Bytes32) Set(s string) error {
	if len(s) != len(b)*2 {
		return fmt.Errorf("invalid length")
	}
	if _, err := hex.Decode(b[:], []byte(s)); err != nil {
		return err
	}
	return nil
}

// UnmarshalJSON decodes a JSON hex string into b. An empty string decodes to
// the zero value.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid type")
	}
	data = data[1 : len(data)-1]
	if len(data) == 0 {
		*b = Bytes32{}
		return nil
	}
	return b.Set(string(data))
}

// MarshalJSON encodes b as a JSON hex string.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(b[:])
}

// Scan implements sql.Scanner.
func (b *Bytes32) Scan(v interface{}) error {
	data, ok := v.([]byte)
	if !ok {
		return fmt.Errorf("value must be type []byte but is type %T", v)
	}
	if len(data) != len(b) {
		return fmt.Errorf("invalid length")
	}
	copy(b[:], data)
	return nil
}

// Value implements driver.Valuer.
func (b Bytes32) Value() (driver.Value, error) {
	return b[:], nil
}

var _ sql.Scanner = &Bytes32{}
var _ driver.Valuer = Bytes32{}

// Bytes is a byte buffer, such as a TransactionHex, which marshals to and from
// a JSON hex string.
type Bytes []byte

// String returns the hex encoding of b.
func (b Bytes) String() string {
	return hex.EncodeToString(b)
}

// Set decodes the hex string s into b.
func (b *Bytes) Set(s string) error {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*b = buf
	return nil
}

// UnmarshalJSON decodes a JSON hex string into b.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid type")
	}
	data = data[1 : len(data)-1]
	*b = make(Bytes, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(*b, data); err != nil {
		*b = nil
		return err
	}
	return nil
}

// MarshalJSON encodes b as a JSON hex string.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(b)
}

func bytesMarshalJSON(b []byte) ([]byte, error) {
	l := hex.EncodedLen(len(b)) + 2
	data := make([]byte, l)
	hex.Encode(data[1:], b)
	data[0] = '"'
	data[len(data)-1] = '"'
	return data, nil
}
