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
	"context"
	"math"
	"time"
)

// Backoff is an exponential backoff policy. The delay after attempt n
// (counting from 0) is Base << n, capped at Max.
type Backoff struct {
	Attempts int
	Base     time.Duration
	// Max caps the delay. Zero means no cap.
	Max time.Duration
}

// Defaults for Client.Submit and Client.Confirm.
var (
	DefaultSubmitBackoff  = Backoff{Attempts: 3, Base: time.Second, Max: 30 * time.Second}
	DefaultConfirmBackoff = Backoff{Attempts: 7, Base: time.Second, Max: 30 * time.Second}
)

// Delay returns the delay following attempt n.
func (b Backoff) Delay(n int) time.Duration {
	d := b.Base
	for i := 0; i < n; i++ {
		if b.Max > 0 && d >= b.Max {
			return b.Max
		}
		if d > d<<1 {
			// Overflow.
			if b.Max > 0 {
				return b.Max
			}
			return math.MaxInt64
		}
		d <<= 1
	}
	if b.Max > 0 && d > b.Max {
		return b.Max
	}
	return d
}

// Sleep blocks for b.Delay(n) or until ctx is done, in which case it
// returns ctx.Err().
func (b Backoff) Sleep(ctx context.Context, n int) error {
	t := time.NewTimer(b.Delay(n))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
