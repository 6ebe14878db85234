// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Command server runs the RecipeHub recommendation API.

RecipeHub records what users save, cook, rate and dismiss, and blends three
signals into personal recipe recommendations: collaborative overlap with
similar cooks, content similarity to the user's taste profile, and recent
popularity.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Activity store: BadgerDB, or in memory for development
 4. Recipe catalog: JSON file loaded into memory
 5. Recommendation engine with TTL or ristretto caches
 6. Supervisor tree: batch refresh, cache janitor, HTTP server

The supervisor tree isolates background work from request serving:

	RootSupervisor ("recipehub")
	├── DataSupervisor ("data-layer")
	│   ├── BatchService
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

	HTTP_PORT=8080               # listen port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	STORE_BACKEND=badger         # badger or memory
	BADGER_PATH=/data/recipehub/activity
	CATALOG_PATH=/data/recipehub/catalog.json
	BATCH_INTERVAL=24h

Any key can also be set as RECIPEHUB_<SECTION>__<KEY>, for example
RECIPEHUB_RECOMMEND__WEIGHTS__TREND=0.2. See package config.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
server.shutdown_timeout, the batch refresh is canceled, and the activity
store is closed.

# Example

	export STORE_BACKEND=memory
	export CATALOG_PATH=./testdata/catalog.json
	./server
	curl localhost:8080/api/v1/recommendations/user/1?limit=5
*/
package main
