// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Command bitbench times the flag accumulation strategies of package
// tracking and, optionally, exercises one-way bitsets of very large size.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/must"
	"github.com/grailbio/onewaybits/benchtime"
	"github.com/grailbio/onewaybits/bitset"
	"github.com/grailbio/onewaybits/tracking"
)

func parseThresholds(list string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.E(errors.Invalid, "bad threshold", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runTracking(c tracking.Config, thresholds []float64, strategies []tracking.Strategy, runs int) error {
	for _, threshold := range thresholds {
		c.Threshold = threshold
		for _, s := range strategies {
			var obs float64
			r, err := benchtime.Sample(runs, func() (err error) {
				obs, err = s.Sample(c)
				return
			})
			if err != nil {
				return errors.E(err, fmt.Sprintf("strategy %s", s))
			}
			label := fmt.Sprintf("t/step (%s, thresh %g)", s, threshold)
			fmt.Printf("%-34s %v   obs = %g\n", label+":", r.Per(c.Steps), obs/float64(c.Steps))
		}
	}
	return nil
}

func runSharded(c tracking.Config, nShard, flushEvery int) error {
	start := time.Now()
	moved, err := tracking.AccumulateSharded(c, nShard, flushEvery)
	if err != nil {
		return err
	}
	fmt.Printf("sharded: %d walkers, flush every %d steps: %s of %s coordinates moved in %v\n",
		nShard, flushEvery, humanize.Comma(int64(moved.Count())), humanize.Comma(int64(c.Dim)), time.Since(start))
	return nil
}

// runHuge allocates two bitsets of nBits bits each and times a few bulk
// operations on them.
func runHuge(nBits uint64) {
	timed := func(what string, fn func()) {
		start := time.Now()
		fn()
		fmt.Printf("huge: %-32s %v\n", what+":", time.Since(start))
	}
	var a, b *bitset.OneWay[uint8]
	timed(fmt.Sprintf("allocate 2 x %s bits", humanize.Comma(int64(nBits))), func() {
		a = bitset.New[uint8](nBits)
		b = bitset.New[uint8](nBits)
	})
	log.Printf("huge: %s per bitset", humanize.IBytes(uint64(a.NumBlocks())))
	timed("set every third bit", func() {
		for i := uint64(0); i < nBits; i += 3 {
			a.Set(i)
		}
	})
	timed("count", func() { fmt.Printf("huge: count = %s\n", humanize.Comma(int64(a.Count()))) })
	timed("merge", func() { b.Merge(a) })
	timed("reset both", func() {
		a.Reset()
		b.Reset()
	})
	timed("set sparse bits on both", func() {
		for i := uint64(500); i < nBits; i += 997 {
			a.Set(i - 500)
			a.Set(i - 250)
			b.Set(i - 250)
			b.Set(i)
		}
	})
	fmt.Printf("huge: count1 = %s, count2 = %s\n", humanize.Comma(int64(a.Count())), humanize.Comma(int64(b.Count())))
	timed("merge second into first", func() { a.Merge(b) })
	fmt.Printf("huge: count1 = %s\n", humanize.Comma(int64(a.Count())))
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bitbench: ")
	var (
		runs       = flag.Int("runs", 10, "timed runs per strategy")
		steps      = flag.Int("steps", tracking.DefaultConfig.Steps, "walk steps per run")
		dim        = flag.Int("dim", tracking.DefaultConfig.Dim, "walker dimensions, i.e. flags per bitset")
		thresholds = flag.String("thresholds", "0.02,0.5,1", "comma-separated per-coordinate change probabilities")
		seed       = flag.Int64("seed", tracking.DefaultConfig.Seed, "random seed")
		strategies = flag.String("strategies", "all", "comma-separated strategies: "+strategyNames())
		shards     = flag.Int("shards", 0, "if positive, also run the sharded merge experiment with this many walkers")
		flushEvery = flag.Int("flush", 100, "steps between merges in the sharded experiment")
		huge       = flag.Uint64("huge", 0, "if positive, exercise two bitsets of this many bits")
		verbose    = flag.Bool("v", false, "log debug output")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `usage: bitbench [flags]

Bitbench times random-walk change tracking with several flag
accumulation strategies and reports the time per walk step.

`)
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if *verbose {
		log.SetLevel(log.Debug)
	}

	ts, err := parseThresholds(*thresholds)
	must.Nil(err)
	ss, err := tracking.ParseStrategies(*strategies)
	must.Nil(err)
	c := tracking.Config{Steps: *steps, Dim: *dim, Seed: *seed}
	must.Nil(runTracking(c, ts, ss, *runs))
	if *shards > 0 {
		c.Threshold = ts[0]
		must.Nil(runSharded(c, *shards, *flushEvery))
	}
	if *huge > 0 {
		runHuge(*huge)
	}
}

func strategyNames() string {
	names := make([]string, len(tracking.Strategies))
	for i, s := range tracking.Strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
