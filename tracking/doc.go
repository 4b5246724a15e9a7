// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package tracking implements the change-tracking experiment used to compare
// flag accumulation strategies.
//
// A random walker in Dim dimensions moves each coordinate with probability
// Threshold per step.  After every step an expensive per-coordinate
// observable is summed over all coordinates.  Strategies differ only in how
// they remember which coordinates moved, so that the observable is
// recomputed for those alone: not at all (NoTrack), by comparing against the
// previous position (Check), or by setting flags in a []bool, a
// bitset.OneWay, a github.com/willf/bitset or a roaring bitmap.  Given the
// same Config every strategy produces exactly the same result.
package tracking
