// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package benchtime times repeated runs of a function and summarizes them as
// a mean with its standard error.
package benchtime

import (
	"fmt"
	"math"
	"time"

	"github.com/grailbio/base/errors"
)

// Result summarizes a set of timed runs.
type Result struct {
	// Runs is the number of timed runs.
	Runs int
	// Mean is the mean run duration.
	Mean time.Duration
	// StdErr is the standard error of Mean.  It is zero for a single run.
	StdErr time.Duration
}

// Sample calls fn runs times and returns the mean duration and its standard
// error.  Sample stops at the first error returned by fn.
func Sample(runs int, fn func() error) (Result, error) {
	if runs < 1 {
		return Result{}, errors.E(errors.Invalid, fmt.Sprintf("benchtime.Sample: runs must be positive, got %d", runs))
	}
	times := make([]float64, runs)
	for i := range times {
		start := time.Now()
		if err := fn(); err != nil {
			return Result{}, errors.E(err, fmt.Sprintf("run %d", i))
		}
		times[i] = float64(time.Since(start))
	}
	mean, stderr := MeanStdErr(times)
	return Result{Runs: runs, Mean: time.Duration(mean), StdErr: time.Duration(stderr)}, nil
}

// MeanStdErr returns the mean of x and the standard error of that mean,
// sqrt(sum((x-mean)^2) / (n(n-1))).  The standard error is zero when
// len(x) < 2, and both are zero for an empty x.
func MeanStdErr(x []float64) (mean, stderr float64) {
	if len(x) == 0 {
		return 0, 0
	}
	for _, v := range x {
		mean += v
	}
	n := float64(len(x))
	mean /= n
	if len(x) < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(ss / ((n - 1) * n))
}

// Per scales r down to a single operation, for runs that each perform ops
// operations.
func (r Result) Per(ops int) Result {
	if ops <= 0 {
		return r
	}
	return Result{Runs: r.Runs, Mean: r.Mean / time.Duration(ops), StdErr: r.StdErr / time.Duration(ops)}
}

// String formats r as "mean +- stderr".
func (r Result) String() string {
	return fmt.Sprintf("%v +- %v", r.Mean, r.StdErr)
}
