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

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Spatium-Labs/desod/flag"
	"github.com/Spatium-Labs/desod/journal"
	"github.com/Spatium-Labs/desod/log"
	"github.com/Spatium-Labs/desod/srv"
)

const journalFile = "journal.sqlite3"

func main() { os.Exit(_main()) }
func _main() (ret int) {
	// Completion uses some flags, so parse them first thing.
	flag.Parse()
	if flag.Completion.Complete() {
		// Invoked for the purposes of completion, so don't actually
		// run the daemon.
		return 0
	}

	log := log.New("main")
	if err := flag.Validate(); err != nil {
		log.Error(err)
		return 1
	}
	acct, err := flag.Account()
	if err != nil {
		log.Error(err)
		return 1
	}

	// Set up interrupts channel. We don't want to be interrupted during
	// initialization. If the signal is sent we will handle it later.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	go func() {
		<-sigint
		cancel()
	}()

	log.Info("Desod Version: ", flag.Revision)
	defer log.Info("DeSo Daemon stopped.")

	// Journal
	if err := os.MkdirAll(flag.DBPath, 0755); err != nil {
		log.Errorf("os.MkdirAll(%#v): %v", flag.DBPath, err)
		return 1
	}
	jrnl, err := journal.Open(filepath.Join(flag.DBPath, journalFile))
	if err != nil {
		log.Errorf("journal.Open(): %v", err)
		return 1
	}
	defer func() {
		if err := jrnl.Close(); err != nil {
			log.Errorf("journal.Close(): %v", err)
		}
		log.Info("Journal closed.")
	}()
	log.Info("Journal opened.")

	// Server
	srvDone := srv.Start(ctx, srv.Config{
		Address: flag.APIAddress,
		Account: acct,
		Client:  flag.Client(),
		Journal: jrnl,
	})
	if srvDone == nil {
		return 1
	}
	defer func() {
		<-srvDone // Wait for server to stop.
		log.Info("JSON RPC API server stopped.")
	}()
	log.Info("JSON RPC API server started.")

	log.Infof("DeSo Daemon started. Posting as %v on %v.", acct.PublicKey, acct.Node)

	// Stop handling signals once we return.
	defer func() { signal.Reset(); close(sigint) }()

	select {
	case <-ctx.Done():
		log.Infof("SIGINT: Shutting down...")
		return 0
	case <-srvDone: // Closed if server exits prematurely.
	}
	return 1
}
