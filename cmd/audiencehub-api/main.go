// @title         AudienceHub API
// @version       0.1.0
// @description   Tenant-scoped lists, segments, and company membership

package main

import (
	"context"
	"strings"

	"audiencehub/internal/modkit/repokit"
	"audiencehub/internal/platform/config"
	perr "audiencehub/internal/platform/errors"
	"audiencehub/internal/platform/logger"
	phttp "audiencehub/internal/platform/net/http"
	"audiencehub/internal/platform/store"

	"audiencehub/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres)
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(context.Background(), st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Token:          gatewayToken,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// gatewayToken parses the opaque token the edge gateway issues after it has
// authenticated the caller: the auth user id, optionally followed by a colon
// and the customer id the caller selected in the UI.
func gatewayToken(raw string) (userID string, tenantID string, err error) {
	uid, claim, _ := strings.Cut(raw, ":")
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", "", perr.Unauthorizedf("empty subject in bearer token")
	}
	return uid, strings.TrimSpace(claim), nil
}
