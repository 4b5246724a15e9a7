// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bitset provides OneWay, a fixed-size bitset specialized for flag
// accumulation: bits are only ever set from 0 to 1, then counted or read, and
// then the whole set is reset.  Giving up single-bit clearing is what lets
// the set track "is any bit set?" with a single bool, so Any() and None() are
// O(1) and Count(), GetAll() and All() return early on a known-empty set.
//
// The block type W (uint8 through uint64) is chosen by the caller.  Indices
// are uint64, so sets with tens of billions of bits are addressable when
// memory allows.
//
// The index-based accessors (Set, Get, SetBlockBit, GetBlockBit) do not check
// their arguments.  An out-of-range index either crashes the program with a
// slice bounds panic or silently touches a padding bit of the last block;
// callers must never rely on either outcome.  SetChecked, GetChecked and
// MergeChecked are the bounds-checked alternatives for code where safety
// matters more than throughput.
//
// It is essentially a less-abstracted, monotone variant of
// github.com/willf/bitset.
package bitset
