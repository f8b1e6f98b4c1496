// Package api provides the HTTP API for the application
package api

import (
	"context"

	"audiencehub/internal/platform/config"
	"audiencehub/internal/platform/logger"
	phttp "audiencehub/internal/platform/net/http"
	"audiencehub/internal/platform/store"

	"audiencehub/internal/modkit"
	"audiencehub/internal/modkit/httpkit"
	"audiencehub/internal/modkit/repokit"
	"audiencehub/internal/modkit/module"
	"audiencehub/internal/modkit/swaggerkit"

	listsmod "audiencehub/internal/services/api/lists/module"
	metamod "audiencehub/internal/services/api/meta/module"

	listsdom "audiencehub/internal/services/lists/domain"
	listsrepo "audiencehub/internal/services/lists/repo"
	listssvc "audiencehub/internal/services/lists/service"
	memrepo "audiencehub/internal/services/membership/repo"
	memsvc "audiencehub/internal/services/membership/service"
	tenancyrepo "audiencehub/internal/services/tenancy/repo"
	tenancysvc "audiencehub/internal/services/tenancy/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Token          httpkit.TokenFunc
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// every transaction starts with a local statement timeout
	pg := repokit.WithBeginHooks(opt.Store.PG, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, "SET LOCAL statement_timeout = '5s'")
		return err
	})

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  pg,
	}

	// The verticals compose: lists consumes tenancy (user directory) and
	// membership (counts and copies), so build the leaves first.
	tenants := tenancysvc.New(deps.PG, tenancyrepo.NewPG())
	members := memsvc.New(deps.PG, memrepo.NewPG())
	lists := listssvc.New(deps.PG, listsrepo.NewPG(), tenants, members)

	ports := listsmod.Ports{Lists: lists, Members: members, Tenancy: tenants}
	mods := []module.Module{
		listsmod.New(deps, listsdom.KindList, modkit.WithPorts(ports)),
		listsmod.New(deps, listsdom.KindSegment, modkit.WithPorts(ports)),
	}
	// meta probes the raw pool so readiness can reach its Ping
	meta := metamod.New(modkit.Deps{Cfg: opt.Config, PG: opt.Store.PG})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// health endpoints stay public
		module.Register(meta.Name(), meta.Ports())
		meta.MountRoutes(api)

		// everything else sits behind bearer auth; the token parser yields
		// the caller's auth id and optional tenant claim
		httpkit.Protected(api, httpkit.NewPortFunc(opt.Token), func(pr httpkit.Router) {
			for _, m := range mods {
				// register each module's ports under its own name (for cross-module lookups)
				module.Register(m.Name(), m.Ports())

				// mount module routes under its Prefix()
				m.MountRoutes(pr)
			}
		})
	})
}
