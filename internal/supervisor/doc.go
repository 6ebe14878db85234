// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package supervisor runs RecipeHub's long-lived services under suture v4.

The tree has two layers:

	RootSupervisor ("recipehub")
	├── DataSupervisor ("data-layer")
	│   ├── BatchService (if batch.enabled)
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted with suture's exponential backoff. The layers
count failures independently, so a refresh loop that keeps failing backs off
without touching the HTTP server.

Supervisor events are written through sutureslog to an slog.Logger, which in
RecipeHub is backed by zerolog (see logging.NewSlogLogger):

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewBatchService(engine, batchCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
	err = tree.Serve(ctx)

Serve returns once ctx is canceled and every service has stopped or hit
ShutdownTimeout. UnstoppedServiceReport names the ones that did not.
*/
package supervisor
