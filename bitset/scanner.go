// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitset

import "math/bits"

// SetBitScanner iterates over the set bits of a OneWay in increasing order.
// Unlike a destructive scanner it leaves the bitset alone, so the caller can
// still Count or Merge it afterwards; it must not be modified while the scan
// is in progress.
//
// Typical use:
//
//	for sc := bitset.NewSetBitScanner(s); ; {
//		i, ok := sc.Next()
//		if !ok {
//			break
//		}
//		...
//	}
type SetBitScanner[W Word] struct {
	// blocks is the scanned bitset's storage, or nil if it is known empty.
	blocks []W
	// blockIdx is the index of bitWord in blocks.
	blockIdx int
	// bitWord is blocks[blockIdx], with already-returned bits cleared.
	bitWord W
}

// NewSetBitScanner returns a scanner positioned before the first set bit of s.
func NewSetBitScanner[W Word](s *OneWay[W]) SetBitScanner[W] {
	sc := SetBitScanner[W]{blockIdx: -1}
	if s.dirty {
		sc.blocks = s.blocks
	}
	return sc
}

// Next returns the index of the next set bit, or false once all have been
// returned.
func (sc *SetBitScanner[W]) Next() (uint64, bool) {
	for sc.bitWord == 0 {
		if sc.blockIdx+1 >= len(sc.blocks) {
			return 0, false
		}
		sc.blockIdx++
		sc.bitWord = sc.blocks[sc.blockIdx]
	}
	bitWord := sc.bitWord
	sc.bitWord = bitWord & (bitWord - 1)
	return uint64(sc.blockIdx)<<wordShift[W]() + uint64(bits.TrailingZeros64(uint64(bitWord))), true
}

// AppendSetBits appends the indices of the set bits of s to dst and returns
// the extended slice.
func AppendSetBits[W Word](dst []uint64, s *OneWay[W]) []uint64 {
	for sc := NewSetBitScanner(s); ; {
		i, ok := sc.Next()
		if !ok {
			return dst
		}
		dst = append(dst, i)
	}
}
