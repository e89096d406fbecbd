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

// Package journal records the transactions submitted by desod in a SQLite
// database.
package journal

import (
	"fmt"
	"time"

	"github.com/gocraft/dbr"
	"github.com/gocraft/dbr/dialect"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/Spatium-Labs/desod/deso"
)

const dbDriver = "sqlite3"

// Submission types.
const (
	TypePost    = "post"
	TypeComment = "comment"
	TypeUpdate  = "update"
)

// TypeOf returns the submission type of data.
func TypeOf(data deso.SubmitPostData) string {
	switch {
	case data.IsUpdate():
		return TypeUpdate
	case data.IsComment():
		return TypeComment
	}
	return TypePost
}

// Submission is a journaled transaction.
type Submission struct {
	ID        uint64    `json:"id"`
	CreatedAt time.Time `json:"timestamp" gorm:"NOT NULL;"`

	TxnHash  *deso.Bytes32 `json:"txnhash" gorm:"type:VARCHAR(32); UNIQUE_INDEX; NOT NULL;"`
	PostHash *deso.Bytes32 `json:"posthash,omitempty" gorm:"type:VARCHAR(32);"`

	Publisher string `json:"publisher" gorm:"NOT NULL;"`
	Type      string `json:"type" gorm:"NOT NULL;"`

	Confirmed bool `json:"confirmed"`
	Attempts  int  `json:"attempts"`
	Polls     int  `json:"polls"`
}

// NewSubmission returns the Submission for sub, published by publisher.
func NewSubmission(sub deso.Submission, publisher, typ string) Submission {
	s := Submission{
		TxnHash:   &sub.TxnHashHex,
		Publisher: publisher,
		Type:      typ,
		Confirmed: sub.Confirmed,
		Attempts:  sub.SubmitAttempts,
		Polls:     sub.Polls,
	}
	if sub.PostEntryResponse != nil && !sub.PostEntryResponse.PostHashHex.IsZero() {
		s.PostHash = &sub.PostEntryResponse.PostHashHex
	}
	return s
}

// Journal is a SQLite submission journal. Journal is safe for concurrent
// use.
type Journal struct {
	db  *gorm.DB
	dbr *dbr.Connection
}

// Open opens or creates the journal database at fpath.
func Open(fpath string) (_ *Journal, err error) {
	db, err := gorm.Open(dbDriver, fpath)
	if err != nil {
		return nil, err
	}
	// Ensure the db gets closed if there are any issues.
	defer func() {
		if err != nil {
			db.Close()
		}
	}()
	db.LogMode(false)
	// SQLite supports a single writer.
	db.DB().SetMaxOpenConns(1)
	if err = db.AutoMigrate(&Submission{}).Error; err != nil {
		return nil, fmt.Errorf("db.AutoMigrate(&Submission{}): %v", err)
	}
	return &Journal{db: db, dbr: &dbr.Connection{
		DB: db.DB(), Dialect: dialect.SQLite3,
		EventReceiver: &dbr.NullEventReceiver{},
	}}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record saves s and sets its ID and CreatedAt.
func (j *Journal) Record(s *Submission) error {
	if s.TxnHash == nil || s.TxnHash.IsZero() {
		return fmt.Errorf("missing txn hash")
	}
	if err := j.db.Create(s).Error; err != nil {
		return fmt.Errorf("db.Create(): %v", err)
	}
	return nil
}

// Get returns the Submission for the txn hash, or false if it does not
// exist.
func (j *Journal) Get(hash deso.Bytes32) (Submission, bool, error) {
	var s Submission
	err := j.db.Where("txn_hash = ?", hash).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return Submission{}, false, nil
	}
	if err != nil {
		return Submission{}, false, err
	}
	return s, true, nil
}

// SetConfirmed marks the txn hash as confirmed.
func (j *Journal) SetConfirmed(hash deso.Bytes32) error {
	return j.db.Model(&Submission{}).Where("txn_hash = ?", hash).
		Update("confirmed", true).Error
}

// Query selects journaled submissions for List.
type Query struct {
	// Publisher limits results to a single public key if not empty.
	Publisher string
	// Unconfirmed limits results to submissions that were not confirmed.
	Unconfirmed bool
	// Limit is the maximum number of results. Zero means no limit.
	Limit uint64
}

// List returns the submissions matching q, newest first.
func (j *Journal) List(q Query) ([]Submission, error) {
	stmt := j.dbr.NewSession(nil).Select("*").From("submissions")
	if len(q.Publisher) > 0 {
		stmt = stmt.Where("publisher = ?", q.Publisher)
	}
	if q.Unconfirmed {
		stmt = stmt.Where("confirmed = ?", false)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	var subs []Submission
	if _, err := stmt.OrderDesc("id").Load(&subs); err != nil {
		return nil, fmt.Errorf("dbr.SelectStmt.Load(): %v", err)
	}
	return subs, nil
}
