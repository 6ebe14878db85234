// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

/*
Package cache provides the key/value stores behind the recommendation
engine's projection caches.

# Implementations

  - TTL: sync.RWMutex-guarded map with one TTL per cache. Expiry is lazy
    (checked on Get) plus Cleanup for bulk removal; no goroutine is started.
  - Ristretto: github.com/dgraph-io/ristretto/v2 with per-entry TTL and a
    bounded entry count.
  - Noop: never stores anything; every Get misses.

All three implement Store, so callers can inject whichever fits, and tests
can substitute Noop or a TTL with a fixed clock.

# Metrics

Hits, misses and entry counts are exported per cache name:

  - recipehub_cache_hits_total{cache}
  - recipehub_cache_misses_total{cache}
  - recipehub_cache_entries{cache}
*/
package cache
