// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package services adapts RecipeHub components to suture.Service.

Each wrapper turns a component's lifecycle into Serve(ctx) error and names
itself through fmt.Stringer for supervisor events:

  - HTTPServerService: ListenAndServe plus a bounded graceful Shutdown.
  - BatchService: the periodic profile and trend refresh. Each run gets its
    own correlation ID and timeout; a run that overlaps a manual refresh is
    skipped.
  - CacheJanitorService: removes expired entries from TTL caches.

Returning from Serve with an error makes the supervisor restart the service
with backoff. Context cancellation is the only normal way out.
*/
package services
