// Package srv implements the desod JSON RPC 2.0 API.
package srv

import (
	"context"
	"net/http"

	jrpc "github.com/AdamSLevy/jsonrpc2/v11"
	"github.com/rs/cors"

	"github.com/Spatium-Labs/desod/deso"
	"github.com/Spatium-Labs/desod/flag"
	"github.com/Spatium-Labs/desod/journal"
	_log "github.com/Spatium-Labs/desod/log"
)

var (
	log _log.Log
	srv http.Server

	// ctx is the daemon's context. Pipeline calls made on behalf of API
	// requests use it so that they are cancelled on shutdown.
	ctx     context.Context
	account deso.Account
	client  *deso.Client
	jrnl    *journal.Journal
)

const APIVersion = "1"

// Config is everything the API needs to serve requests.
type Config struct {
	Address string
	Account deso.Account
	Client  *deso.Client
	Journal *journal.Journal
}

// Start launches the API server and returns a channel that is closed once
// the server stops. The server shuts down when ctx is done. Start returns
// nil if cfg is incomplete.
func Start(c context.Context, cfg Config) (done <-chan struct{}) {
	log = _log.New("srv")
	if cfg.Client == nil || cfg.Journal == nil {
		log.Errorf("srv.Start(): missing client or journal")
		return nil
	}
	ctx, account, client, jrnl = c, cfg.Account, cfg.Client, cfg.Journal

	jrpc.DebugMethodFunc = flag.LogDebug
	jrpcHandler := jrpc.HTTPRequestHandler(instrument(jrpcMethods))
	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add(http.CanonicalHeaderKey("Desod-Version"), flag.Revision)
		w.Header().Add(http.CanonicalHeaderKey("Desod-Api-Version"), APIVersion)
		jrpcHandler(w, r)
	}

	// Set up server
	srvMux := http.NewServeMux()
	srvMux.Handle("/", handler)
	srvMux.Handle("/v1", handler)
	srvMux.Handle("/metrics", metricsHandler())

	cors := cors.New(cors.Options{AllowedOrigins: []string{"*"}})

	srv = http.Server{Handler: cors.Handler(srvMux)}
	srv.Addr = cfg.Address

	_done := make(chan struct{})
	go func() {
		defer close(_done)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("srv.ListenAndServe(): %v", err)
		}
	}()
	go func() {
		select {
		case <-c.Done():
		case <-_done:
			return
		}
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Errorf("srv.Shutdown(): %v", err)
		}
	}()
	return _done
}
