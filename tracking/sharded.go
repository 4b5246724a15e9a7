// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tracking

import (
	"fmt"
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/onewaybits/bitset"
)

// ShardSeed returns the seed of shard i of a sharded walk.
func ShardSeed(c Config, i int) int64 {
	return c.Seed + int64(i)
}

// AccumulateSharded runs nShard independent walks concurrently, shard i
// seeded with ShardSeed(c, i), and returns the set of coordinates that moved
// at least once in any of them.
//
// Each shard marks moves in a private bitset.OneWay and merges it into the
// shared result every flushEvery steps (and once at the end), under a lock,
// resetting the private set afterwards.
func AccumulateSharded(c Config, nShard, flushEvery int) (*bitset.OneWay[uint64], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if nShard <= 0 || flushEvery <= 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("tracking.AccumulateSharded: need positive shard count and flush interval, got %d, %d", nShard, flushEvery))
	}
	var (
		mu     sync.Mutex
		result = bitset.New[uint64](uint64(c.Dim))
		merges int
	)
	flush := func(private *bitset.OneWay[uint64]) {
		if private.None() {
			return
		}
		mu.Lock()
		result.Merge(private)
		merges++
		mu.Unlock()
		private.Reset()
	}
	err := traverse.Each(nShard, func(shard int) error {
		w := newWalker(c, ShardSeed(c, shard))
		private := &scanTracker{flags: bitset.New[uint64](uint64(c.Dim))}
		for step := 0; step < c.Steps; step++ {
			w.step(private)
			if (step+1)%flushEvery == 0 {
				flush(private.flags)
			}
		}
		flush(private.flags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("tracking: %d shards, %d merges: %d of %d coordinates moved", nShard, merges, result.Count(), c.Dim)
	return result, nil
}
