// nolastub serves a canned stand-in for the aggregation service so the
// dashboard can be developed and demoed without the real backend.
package main

import (
	"context"

	"noladash/internal/platform/config"
	"noladash/internal/platform/logger"
	phttp "noladash/internal/platform/net/http"
	"noladash/internal/stub"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	l := logger.Get()

	// http server (reads STUB_PORT, defaults to the real service's :8000)
	srv := phttp.NewServer(config.New().Prefix("STUB_"))
	stub.Mount(srv.Mux())

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
