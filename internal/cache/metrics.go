// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipehub_cache_hits_total",
		Help: "Total number of cache hits by cache name",
	}, []string{"cache"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipehub_cache_misses_total",
		Help: "Total number of cache misses by cache name",
	}, []string{"cache"})

	cacheSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "recipehub_cache_entries",
		Help: "Current number of entries by cache name",
	}, []string{"cache"})
)

func recordHit(name string) {
	cacheHits.WithLabelValues(name).Inc()
}

func recordMiss(name string) {
	cacheMisses.WithLabelValues(name).Inc()
}

func recordSize(name string, n int) {
	cacheSize.WithLabelValues(name).Set(float64(n))
}
