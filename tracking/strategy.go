// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tracking

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/onewaybits/bitset"
	wbitset "github.com/willf/bitset"
)

// A tracker remembers which coordinates moved during one step.
type tracker interface {
	// reset forgets all marks.  It is called before every step.
	reset()
	// mark records that coordinate i moved.
	mark(i int)
	// changed calls fn for every coordinate of x that moved since the last
	// reset, in increasing order.
	changed(x []float64, fn func(i int))
}

// Strategy names a flag accumulation strategy.
type Strategy string

const (
	// NoTrack recomputes every coordinate on every step.
	NoTrack Strategy = "notrack"
	// Check compares each coordinate against its previous value.
	Check Strategy = "check"
	// Bools sets flags in a []bool.
	Bools Strategy = "bools"
	// OneWay8 sets flags in a bitset.OneWay[uint8] and reads them with GetAll.
	OneWay8 Strategy = "oneway8"
	// OneWay64 sets flags in a bitset.OneWay[uint64] and reads them with a
	// SetBitScanner.
	OneWay64 Strategy = "oneway64"
	// Willf sets flags in a github.com/willf/bitset.BitSet.
	Willf Strategy = "willf"
	// Roaring adds flags to a roaring bitmap.
	Roaring Strategy = "roaring"
)

// Strategies lists every strategy, in reporting order.
var Strategies = []Strategy{NoTrack, Check, Bools, OneWay8, OneWay64, Willf, Roaring}

// ParseStrategies parses a comma-separated list of strategy names.  "all"
// selects every strategy.
func ParseStrategies(list string) ([]Strategy, error) {
	if list == "all" {
		return Strategies, nil
	}
	var out []Strategy
	for _, name := range strings.Split(list, ",") {
		s := Strategy(strings.TrimSpace(name))
		if _, err := s.newTracker(0); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (s Strategy) newTracker(dim int) (tracker, error) {
	switch s {
	case NoTrack:
		return noTracker{}, nil
	case Check:
		return &checkTracker{old: make([]float64, dim)}, nil
	case Bools:
		return &boolTracker{flags: make([]bool, dim)}, nil
	case OneWay8:
		return &oneWayTracker{flags: bitset.New[uint8](uint64(dim)), out: make([]bool, dim)}, nil
	case OneWay64:
		return &scanTracker{flags: bitset.New[uint64](uint64(dim))}, nil
	case Willf:
		return &willfTracker{flags: wbitset.New(uint(dim))}, nil
	case Roaring:
		return &roaringTracker{flags: roaring.New()}, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("tracking: unknown strategy %q", string(s)))
}

// Sample runs a walk of c.Steps steps with strategy s and returns the sum of
// the observable over all steps.
func (s Strategy) Sample(c Config) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	t, err := s.newTracker(c.Dim)
	if err != nil {
		return 0, err
	}
	w := newWalker(c, c.Seed)
	last := make([]float64, c.Dim)
	for i, x := range w.x {
		last[i] = Observable(x)
	}
	update := func(i int) { last[i] = Observable(w.x[i]) }
	var obs float64
	for step := 0; step < c.Steps; step++ {
		t.reset()
		w.step(t)
		t.changed(w.x, update)
		for _, v := range last {
			obs += v
		}
	}
	log.Debug.Printf("tracking: %s: %d steps, dim %d, threshold %v: obs %v", s, c.Steps, c.Dim, c.Threshold, obs)
	return obs, nil
}

type noTracker struct{}

func (noTracker) reset()   {}
func (noTracker) mark(int) {}
func (noTracker) changed(x []float64, fn func(int)) {
	for i := range x {
		fn(i)
	}
}

// checkTracker keeps a copy of the previous position.
type checkTracker struct {
	old []float64
}

func (*checkTracker) reset()   {}
func (*checkTracker) mark(int) {}
func (t *checkTracker) changed(x []float64, fn func(int)) {
	for i, v := range x {
		if v != t.old[i] {
			fn(i)
		}
	}
	copy(t.old, x)
}

type boolTracker struct {
	flags []bool
}

func (t *boolTracker) reset()     { clear(t.flags) }
func (t *boolTracker) mark(i int) { t.flags[i] = true }
func (t *boolTracker) changed(_ []float64, fn func(int)) {
	for i, f := range t.flags {
		if f {
			fn(i)
		}
	}
}

// oneWayTracker reads its flags back in bulk, the way a caller that needs a
// plain []bool would.
type oneWayTracker struct {
	flags *bitset.OneWay[uint8]
	out   []bool
}

func (t *oneWayTracker) reset()     { t.flags.Reset() }
func (t *oneWayTracker) mark(i int) { t.flags.Set(uint64(i)) }
func (t *oneWayTracker) changed(_ []float64, fn func(int)) {
	if t.flags.None() {
		return
	}
	t.flags.GetAll(t.out)
	for i, f := range t.out {
		if f {
			fn(i)
		}
	}
}

type scanTracker struct {
	flags *bitset.OneWay[uint64]
}

func (t *scanTracker) reset()     { t.flags.Reset() }
func (t *scanTracker) mark(i int) { t.flags.Set(uint64(i)) }
func (t *scanTracker) changed(_ []float64, fn func(int)) {
	for sc := bitset.NewSetBitScanner(t.flags); ; {
		i, ok := sc.Next()
		if !ok {
			return
		}
		fn(int(i))
	}
}

type willfTracker struct {
	flags *wbitset.BitSet
}

func (t *willfTracker) reset()     { t.flags.ClearAll() }
func (t *willfTracker) mark(i int) { t.flags.Set(uint(i)) }
func (t *willfTracker) changed(_ []float64, fn func(int)) {
	for i, ok := t.flags.NextSet(0); ok; i, ok = t.flags.NextSet(i + 1) {
		fn(int(i))
	}
}

type roaringTracker struct {
	flags *roaring.Bitmap
}

func (t *roaringTracker) reset()     { t.flags.Clear() }
func (t *roaringTracker) mark(i int) { t.flags.Add(uint32(i)) }
func (t *roaringTracker) changed(_ []float64, fn func(int)) {
	for it := t.flags.Iterator(); it.HasNext(); {
		fn(int(it.Next()))
	}
}
