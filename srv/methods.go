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
	"bytes"
	"encoding/json"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/flag"
	"github.com/Spatium-Labs/desod/journal"
)

var jrpcMethods = jrpc.MethodMap{
	"create-post": createPost,
	"update-post": updatePost,
	"get-post":    getPost,

	"sign-transaction": signTransaction,

	"get-submissions":  getSubmissions,
	"check-submission": checkSubmission,

	"get-daemon-properties": getDaemonProperties,
}

// ResultSubmission is the journaled submission along with the post entry
// returned by the node, if any.
type ResultSubmission struct {
	journal.Submission
	Post *deso.PostEntryResponse `json:"post,omitempty"`
}

func createPost(data json.RawMessage) interface{} {
	params := ParamsPost{}
	if err := validate(data, &params); err != nil {
		return err
	}
	postData, err := params.PostData(account.PublicKey)
	if err != nil {
		return desoError(err)
	}
	sub, err := client.CreatePost(ctx, account, postData)
	return record(sub, journal.TypeOf(postData), err)
}

func updatePost(data json.RawMessage) interface{} {
	params := ParamsUpdatePost{}
	if err := validate(data, &params); err != nil {
		return err
	}
	postData, err := params.PostData(account.PublicKey)
	if err != nil {
		return desoError(err)
	}
	sub, err := client.UpdatePost(ctx, account, *params.PostHash, postData)
	return record(sub, journal.TypeUpdate, err)
}

// record journals sub and returns the API result for a create-post or
// update-post call that returned sub and err.
func record(sub deso.Submission, typ string, err error) interface{} {
	submitAttempts.Add(float64(sub.SubmitAttempts))
	if err != nil {
		log.Errorf("%v: %v", typ, err)
		if !sub.TxnHashHex.IsZero() {
			// The node accepted the transaction before confirmation
			// was interrupted.
			sub.Confirmed = false
			journalSubmission(sub, typ)
		}
		return desoError(err)
	}
	res := ResultSubmission{
		Submission: journalSubmission(sub, typ),
		Post:       sub.PostEntryResponse,
	}
	log.Infof("%v %v submitted, confirmed: %v",
		typ, sub.TxnHashHex, sub.Confirmed)
	return res
}

// journalSubmission records sub in the journal. The transaction was
// submitted regardless, so a journal failure is only logged.
func journalSubmission(sub deso.Submission, typ string) journal.Submission {
	submissions.WithLabelValues(typ, labelBool(sub.Confirmed)).Inc()
	s := journal.NewSubmission(sub, account.PublicKey, typ)
	if err := jrnl.Record(&s); err != nil {
		log.Errorf("journal.Record(): %v", err)
	}
	return s
}

func getPost(data json.RawMessage) interface{} {
	params := ParamsGetPost{}
	if err := validate(data, &params); err != nil {
		return err
	}
	post, err := client.GetSinglePost(ctx, deso.GetSinglePost{
		PostHashHex:     *params.PostHash,
		ReaderPublicKey: account.PublicKey,
		CommentLimit:    params.CommentLimit,
	})
	if err != nil {
		return desoError(err)
	}
	return post
}

type ResultSignTransaction struct {
	Tx deso.Bytes `json:"tx"`
}

func signTransaction(data json.RawMessage) interface{} {
	params := ParamsSignTransaction{}
	if err := validate(data, &params); err != nil {
		return err
	}
	var signed deso.Bytes
	var err error
	if params.SignatureIndex != nil {
		signed, err = deso.SignTransaction(params.Tx,
			account.PrivateKey(), *params.SignatureIndex)
	} else {
		signed, err = client.Sign(ctx, account, params.Tx)
	}
	if err != nil {
		return desoError(err)
	}
	return ResultSignTransaction{Tx: signed}
}

func getSubmissions(data json.RawMessage) interface{} {
	params := ParamsGetSubmissions{}
	if err := validate(data, &params); err != nil {
		return err
	}
	subs, err := jrnl.List(journal.Query{
		Publisher:   account.PublicKey,
		Unconfirmed: params.Unconfirmed,
		Limit:       params.Limit,
	})
	if err != nil {
		return journalError(err)
	}
	if len(subs) == 0 {
		return []struct{}{}
	}
	return subs
}

type ParamsCheckSubmission struct {
	TxnHash *deso.Bytes32 `json:"txnhash"`
}

func (p ParamsCheckSubmission) IsValid() error {
	if p.TxnHash == nil || p.TxnHash.IsZero() {
		return jrpc.InvalidParams(`required: "txnhash"`)
	}
	return nil
}

// checkSubmission polls the node once for a journaled submission that was
// not confirmed when it was made.
func checkSubmission(data json.RawMessage) interface{} {
	params := ParamsCheckSubmission{}
	if err := validate(data, &params); err != nil {
		return err
	}
	sub, ok, err := jrnl.Get(*params.TxnHash)
	if err != nil {
		return journalError(err)
	}
	if !ok {
		return ErrorSubmissionNotFound
	}
	if sub.Confirmed {
		return sub
	}
	found, err := client.GetTxn(ctx, *params.TxnHash)
	if err != nil {
		return desoError(err)
	}
	if found {
		if err := jrnl.SetConfirmed(*params.TxnHash); err != nil {
			return journalError(err)
		}
		sub.Confirmed = true
	}
	return sub
}

type ResultGetDaemonProperties struct {
	DesodVersion     string `json:"desodversion"`
	APIVersion       string `json:"apiversion"`
	Node             string `json:"node"`
	PublicKey        string `json:"publickey"`
	DerivedPublicKey string `json:"derivedpublickey,omitempty"`
}

func getDaemonProperties(data json.RawMessage) interface{} {
	if err := validate(data, nil); err != nil {
		return err
	}
	return ResultGetDaemonProperties{
		DesodVersion:     flag.Revision,
		APIVersion:       APIVersion,
		Node:             string(client.Node),
		PublicKey:        account.PublicKey,
		DerivedPublicKey: account.DerivedPublicKey,
	}
}

func validate(data json.RawMessage, params Params) error {
	if string(data) == "null" {
		data = nil
	}
	if params == nil {
		if len(data) > 0 {
			return jrpc.InvalidParams(`no "params" accepted`)
		}
		return nil
	}
	if len(data) == 0 {
		return params.IsValid()
	}
	if err := unmarshalStrict(data, params); err != nil {
		return jrpc.InvalidParams(err.Error())
	}
	return params.IsValid()
}

func unmarshalStrict(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	d := json.NewDecoder(b)
	d.DisallowUnknownFields()
	return d.Decode(v)
}
