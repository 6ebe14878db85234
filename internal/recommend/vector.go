// RecipeHub - Personal Recipe Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehub

package recommend

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// FeatureVector is a sparse weighted vector keyed by namespaced feature
// strings such as "ingredient:garlic" or "time:short".
//
// Every operation that folds over entries does so in sorted key order, so
// results are independent of Go's randomized map iteration.
type FeatureVector map[string]float64

// Keys returns the keys in ascending order.
func (v FeatureVector) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether both vectors hold the same keys with identical
// weights. A nil vector equals an empty one.
func (v FeatureVector) Equal(o FeatureVector) bool {
	if len(v) != len(o) {
		return false
	}
	for k, w := range v {
		ow, ok := o[k]
		if !ok || math.Float64bits(w) != math.Float64bits(ow) {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit digest consistent with Equal.
func (v FeatureVector) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, k := range v.Keys() {
		_, _ = d.WriteString(k)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v[k]))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// SquaredNorm returns the sum of squared weights.
func (v FeatureVector) SquaredNorm() float64 {
	var sum float64
	for _, k := range v.Keys() {
		sum += v[k] * v[k]
	}
	return sum
}

// Norm returns the Euclidean magnitude.
func (v FeatureVector) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Sum returns the total weight.
func (v FeatureVector) Sum() float64 {
	var sum float64
	for _, k := range v.Keys() {
		sum += v[k]
	}
	return sum
}

// Clone returns an independent copy.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	for k, w := range v {
		out[k] = w
	}
	return out
}

// AddScaled adds o*scale into v in place.
func (v FeatureVector) AddScaled(o FeatureVector, scale float64) {
	for k, w := range o {
		v[k] += w * scale
	}
}

// DropNonPositive removes every entry that is not a finite positive weight.
func (v FeatureVector) DropNonPositive() {
	for k, w := range v {
		if !(w > 0) || math.IsInf(w, 0) {
			delete(v, k)
		}
	}
}

// Dot returns the inner product, summed in sorted key order of the shared keys.
func (v FeatureVector) Dot(o FeatureVector) float64 {
	small, large := v, o
	if len(large) < len(small) {
		small, large = large, small
	}
	var dot float64
	for _, k := range small.Keys() {
		if w, ok := large[k]; ok {
			dot += small[k] * w
		}
	}
	return dot
}
