// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package config loads and validates the RecipeHub service configuration.

Configuration is layered with koanf, lowest precedence first:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, or /etc/recipehub/config.yaml
 3. Environment variables

Environment variables come in two forms. Nested keys use the RECIPEHUB_
prefix with a double underscore between levels:

	RECIPEHUB_SERVER__PORT=8080             -> server.port
	RECIPEHUB_RECOMMEND__WEIGHTS__CONTENT=0.6 -> recommend.weights.content
	RECIPEHUB_BATCH__INTERVAL=12h           -> batch.interval

A short list of conventional names is also accepted:

	HTTP_HOST, HTTP_PORT, LOG_LEVEL, LOG_FORMAT, LOG_CALLER,
	BADGER_PATH, CATALOG_PATH, CORS_ORIGINS

Slice values (server.cors_origins) may be given as comma-separated strings.

# Sections

  - server: HTTP listener, timeouts, CORS and rate limiting
  - logging: zerolog level and format
  - store: activity log backend (badger or memory)
  - catalog: recipe catalog and user directory source
  - recommend: recommendation engine tuning (see package recommend)
  - batch: scheduled profile and trend refresh

Example YAML:

	server:
	  port: 8080
	logging:
	  level: debug
	store:
	  backend: badger
	  path: /var/lib/recipehub/activity
	recommend:
	  weights:
	    content: 0.6
	  cache:
	    backend: ristretto
	batch:
	  interval: 24h
*/
package config
