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

package srv

import (
	jrpc "github.com/AdamSLevy/jsonrpc2/v11"

	"github.com/Spatium-Labs/desod/deso"
)

type Params interface {
	IsValid() error
}

// ParamsPost describes a new post or comment.
type ParamsPost struct {
	Body       string            `json:"body"`
	ImageURLs  []string          `json:"imageurls,omitempty"`
	VideoURLs  []string          `json:"videourls,omitempty"`
	ParentHash *deso.Bytes32     `json:"parenthash,omitempty"`
	ExtraData  map[string]string `json:"extradata,omitempty"`
	Hidden     bool              `json:"hidden,omitempty"`
	FeeRate    uint64            `json:"feerate,omitempty"`
}

func (p ParamsPost) IsValid() error {
	if len(p.Body) == 0 && len(p.ImageURLs) == 0 && len(p.VideoURLs) == 0 {
		return jrpc.InvalidParams(`required: "body", "imageurls" or "videourls"`)
	}
	if p.ParentHash != nil && p.ParentHash.IsZero() {
		return jrpc.InvalidParams(`"parenthash" may not be zero`)
	}
	return nil
}

// PostData returns the submit-post payload for publicKey.
func (p ParamsPost) PostData(publicKey string) (deso.SubmitPostData, error) {
	b := deso.NewPostDataBuilder().
		PublicKey(publicKey).
		Body(p.Body).
		ImageURLs(p.ImageURLs...).
		VideoURLs(p.VideoURLs...).
		Hidden(p.Hidden).
		ExtraData(p.ExtraData)
	if p.ParentHash != nil {
		b.ParentPostHashHex(p.ParentHash.String())
	}
	if p.FeeRate > 0 {
		b.FeeRate(p.FeeRate)
	}
	return b.Build()
}

// ParamsUpdatePost replaces the content of an existing post.
type ParamsUpdatePost struct {
	ParamsPost
	PostHash *deso.Bytes32 `json:"posthash"`
}

func (p ParamsUpdatePost) IsValid() error {
	if p.PostHash == nil || p.PostHash.IsZero() {
		return jrpc.InvalidParams(`required: "posthash"`)
	}
	if p.ParentHash != nil {
		return jrpc.InvalidParams(`"parenthash" may not be used with "posthash"`)
	}
	return p.ParamsPost.IsValid()
}

type ParamsGetPost struct {
	PostHash     *deso.Bytes32 `json:"posthash"`
	CommentLimit uint32        `json:"commentlimit,omitempty"`
}

func (p ParamsGetPost) IsValid() error {
	if p.PostHash == nil || p.PostHash.IsZero() {
		return jrpc.InvalidParams(`required: "posthash"`)
	}
	return nil
}

// ParamsSignTransaction signs an unsigned transaction with the daemon's
// account. Without a "signatureindex" the index is requested from the node.
type ParamsSignTransaction struct {
	Tx             deso.Bytes `json:"tx"`
	SignatureIndex *int       `json:"signatureindex,omitempty"`
}

func (p ParamsSignTransaction) IsValid() error {
	if len(p.Tx) == 0 {
		return jrpc.InvalidParams(`required: "tx"`)
	}
	if p.SignatureIndex != nil &&
		(*p.SignatureIndex < 0 || *p.SignatureIndex >= len(p.Tx)) {
		return jrpc.InvalidParams(`"signatureindex" is out of range`)
	}
	return nil
}

type ParamsGetSubmissions struct {
	Limit       uint64 `json:"limit,omitempty"`
	Unconfirmed bool   `json:"unconfirmed,omitempty"`
}

func (p *ParamsGetSubmissions) IsValid() error {
	if p.Limit == 0 {
		p.Limit = 25
	}
	if p.Limit > 1000 {
		return jrpc.InvalidParams(`"limit" may not exceed 1000`)
	}
	return nil
}
