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
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// DoubleSHA256 returns sha256(sha256(data)), the digest that transactions
// are signed over.
func DoubleSHA256(data []byte) [sha256.Size]byte {
	h := sha256.Sum256(data)
	return sha256.Sum256(h[:])
}

// SignTransaction signs txn with sk and splices the signature into txn at
// sigIndex, the offset of the empty signature placeholder returned by the
// node's signature-index endpoint.
//
// The digest covers the entire unsigned txn. The placeholder byte at
// sigIndex is replaced by the signature length followed by the DER encoded
// signature.
func SignTransaction(txn Bytes, sk PrivateKey, sigIndex int) (Bytes, error) {
	if sk.IsZero() {
		return nil, newError(KindSigning, "sign", fmt.Errorf("missing key"))
	}
	if sigIndex < 0 || sigIndex >= len(txn) {
		return nil, newError(KindSigning, "sign", fmt.Errorf(
			"signature index %v out of range for %v byte transaction",
			sigIndex, len(txn)))
	}
	hash := DoubleSHA256(txn)
	sig := sk.Sign(hash[:])
	length := sigLength(len(sig))

	signed := make(Bytes, 0, len(txn)-1+len(length)+len(sig))
	signed = append(signed, txn[:sigIndex]...)
	signed = append(signed, length...)
	signed = append(signed, sig...)
	signed = append(signed, txn[sigIndex+1:]...)
	return signed, nil
}

// SignTransactionHex is SignTransaction for hex encoded inputs and output.
func SignTransactionHex(txnHex, seedHex string, sigIndex int) (string, error) {
	var txn Bytes
	if err := txn.Set(txnHex); err != nil {
		return "", newError(KindSigning, "transaction hex", err)
	}
	sk, err := ParsePrivateKey(seedHex)
	if err != nil {
		return "", err
	}
	signed, err := SignTransaction(txn, sk, sigIndex)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}

// sigLength encodes l as little endian bytes with the trailing zero bytes
// stripped.
func sigLength(l int) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(l))
	n := len(buf)
	for n > 1 && buf[n-1] == 0 {
		n--
	}
	return buf[:n]
}
