// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tracking

import (
	"math"
	"math/rand"
)

// Observable is the per-coordinate observable.  It is deliberately
// expensive, so that skipping unchanged coordinates pays off.
func Observable(x float64) float64 {
	var out float64
	for i := -2.0; i < 2.1; i++ {
		y := x + i
		ay := math.Abs(y)
		out += math.Sin(y) * math.Cos(y) * math.Sqrt(ay) * math.Log(math.Max(0.1, ay)) * math.Exp(-ay)
	}
	return out
}

// walker is a random walk in len(x) dimensions.
type walker struct {
	rng       *rand.Rand
	x         []float64
	threshold float64
}

func newWalker(c Config, seed int64) *walker {
	return &walker{
		rng:       rand.New(rand.NewSource(seed)),
		x:         make([]float64, c.Dim),
		threshold: c.Threshold,
	}
}

// step moves every coordinate with probability threshold by a uniform offset
// in [-0.5, 0.5), and marks the moved ones in t.
func (w *walker) step(t tracker) {
	for i := range w.x {
		if w.rng.Float64() < w.threshold {
			w.x[i] += w.rng.Float64() - 0.5
			t.mark(i)
		}
	}
}
