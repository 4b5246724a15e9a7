// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tracking

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Config parameterizes a walk.
type Config struct {
	// Steps is the number of walk steps.
	Steps int
	// Dim is the number of walker coordinates, and thus of flags.
	Dim int
	// Threshold is the probability that a coordinate moves in a step.
	Threshold float64
	// Seed seeds the walk's random number generator.
	Seed int64
}

// DefaultConfig is the configuration of the reference benchmark.
var DefaultConfig = Config{
	Steps:     10000,
	Dim:       100,
	Threshold: 0.02,
	Seed:      1337,
}

// Validate returns an errors.Invalid error describing the first invalid
// field of c.
func (c Config) Validate() error {
	switch {
	case c.Steps < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("tracking: negative step count %d", c.Steps))
	case c.Dim < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("tracking: negative dimension %d", c.Dim))
	case !(c.Threshold >= 0 && c.Threshold <= 1):
		return errors.E(errors.Invalid, fmt.Sprintf("tracking: threshold %v not in [0, 1]", c.Threshold))
	}
	return nil
}
