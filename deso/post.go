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

// DefaultFeeRateNanosPerKB is the fee rate used by PostDataBuilder unless
// overridden.
const DefaultFeeRateNanosPerKB = 1000

// PostBody is the content of a post.
type PostBody struct {
	Body      string   `json:"Body"`
	ImageURLs []string `json:"ImageURLs,omitempty"`
	VideoURLs []string `json:"VideoURLs,omitempty"`
}

// SubmitPostData is the request body of the submit-post endpoint. It creates
// a post, a comment when ParentStakeID is set, or modifies the post
// PostHashHexToModify.
type SubmitPostData struct {
	UpdaterPublicKey     string            `json:"UpdaterPublicKeyBase58Check"`
	ParentStakeID        string            `json:"ParentStakeID,omitempty"`
	PostHashHexToModify  string            `json:"PostHashHexToModify,omitempty"`
	BodyObj              PostBody          `json:"BodyObj"`
	MinFeeRateNanosPerKB uint64            `json:"MinFeeRateNanosPerKB"`
	IsHidden             bool              `json:"IsHidden"`
	PostExtraData        map[string]string `json:"PostExtraData,omitempty"`
}

// IsComment returns true if d replies to another post.
func (d SubmitPostData) IsComment() bool { return len(d.ParentStakeID) > 0 }

// IsUpdate returns true if d modifies an existing post.
func (d SubmitPostData) IsUpdate() bool { return len(d.PostHashHexToModify) > 0 }

// PostDataBuilder builds SubmitPostData.
type PostDataBuilder struct {
	data SubmitPostData
}

// NewPostDataBuilder returns a PostDataBuilder with the default fee rate.
func NewPostDataBuilder() *PostDataBuilder {
	return &PostDataBuilder{data: SubmitPostData{
		MinFeeRateNanosPerKB: DefaultFeeRateNanosPerKB}}
}

// PublicKey sets the public key of the poster.
func (b *PostDataBuilder) PublicKey(publicKey string) *PostDataBuilder {
	b.data.UpdaterPublicKey = publicKey
	return b
}

// Body sets the text of the post.
func (b *PostDataBuilder) Body(body string) *PostDataBuilder {
	b.data.BodyObj.Body = body
	return b
}

// ImageURLs sets the images of the post.
func (b *PostDataBuilder) ImageURLs(urls ...string) *PostDataBuilder {
	b.data.BodyObj.ImageURLs = urls
	return b
}

// VideoURLs sets the videos of the post.
func (b *PostDataBuilder) VideoURLs(urls ...string) *PostDataBuilder {
	b.data.BodyObj.VideoURLs = urls
	return b
}

// ParentPostHashHex makes the post a comment on the given post.
func (b *PostDataBuilder) ParentPostHashHex(hash string) *PostDataBuilder {
	b.data.ParentStakeID = hash
	return b
}

// PostHashHexToModify makes the post an update of the given post.
func (b *PostDataBuilder) PostHashHexToModify(hash string) *PostDataBuilder {
	b.data.PostHashHexToModify = hash
	return b
}

// FeeRate sets the minimum fee rate in nanos per KB.
func (b *PostDataBuilder) FeeRate(nanosPerKB uint64) *PostDataBuilder {
	b.data.MinFeeRateNanosPerKB = nanosPerKB
	return b
}

// Hidden sets whether the post is hidden.
func (b *PostDataBuilder) Hidden(hidden bool) *PostDataBuilder {
	b.data.IsHidden = hidden
	return b
}

// ExtraData sets the free form metadata of the post.
func (b *PostDataBuilder) ExtraData(extra map[string]string) *PostDataBuilder {
	b.data.PostExtraData = extra
	return b
}

// Build validates and returns the SubmitPostData.
func (b *PostDataBuilder) Build() (SubmitPostData, error) {
	if len(b.data.UpdaterPublicKey) == 0 {
		return SubmitPostData{}, newError(KindAccount, "post data",
			fmt.Errorf("missing public key"))
	}
	if len(b.data.BodyObj.Body) == 0 && len(b.data.BodyObj.ImageURLs) == 0 &&
		len(b.data.BodyObj.VideoURLs) == 0 {
		return SubmitPostData{}, newError(KindAccount, "post data",
			fmt.Errorf("missing body"))
	}
	if b.data.IsComment() && b.data.IsUpdate() {
		return SubmitPostData{}, newError(KindAccount, "post data",
			fmt.Errorf("a post may not both comment and modify"))
	}
	return b.data, nil
}

// PostEntryResponse describes a post as returned by the node.
type PostEntryResponse struct {
	PostHashHex     Bytes32           `json:"PostHashHex"`
	PosterPublicKey string            `json:"PosterPublicKeyBase58Check"`
	ParentStakeID   string            `json:"ParentStakeID,omitempty"`
	Body            string            `json:"Body"`
	ImageURLs       []string          `json:"ImageURLs,omitempty"`
	VideoURLs       []string          `json:"VideoURLs,omitempty"`
	TimestampNanos  uint64            `json:"TimestampNanos"`
	IsHidden        bool              `json:"IsHidden"`
	HasUnlockable   bool              `json:"HasUnlockable"`
	NumNFTCopies    uint64            `json:"NumNFTCopies"`
	LikeCount       uint64            `json:"LikeCount"`
	CommentCount    uint64            `json:"CommentCount"`
	PostExtraData   map[string]string `json:"PostExtraData,omitempty"`

	Comments []PostEntryResponse `json:"Comments,omitempty"`
}

// GetSinglePost is the request body of the get-single-post endpoint.
type GetSinglePost struct {
	PostHashHex     Bytes32 `json:"PostHashHex"`
	ReaderPublicKey string  `json:"ReaderPublicKeyBase58Check,omitempty"`
	CommentLimit    uint32  `json:"CommentLimit"`
}
