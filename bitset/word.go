// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitset

import "math/bits"

// Word is the set of block types a OneWay can be stored in.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// BitsPerWord returns the number of bits in a block of type W.
func BitsPerWord[W Word]() uint {
	return uint(bits.Len64(uint64(^W(0))))
}

// wordShift is log2(BitsPerWord[W]()).  Unsigned shifts and masks stand in
// for division and modulo on the hot paths.
func wordShift[W Word]() uint64 {
	return uint64(bits.TrailingZeros(BitsPerWord[W]()))
}

func wordMask[W Word]() uint64 {
	return uint64(BitsPerWord[W]()) - 1
}

// layout returns the number of blocks needed for nBits bits and the mask of
// valid bits in the last block.  The mask is all ones when nBits is a nonzero
// multiple of the block width, and zero when nBits is zero.
func layout[W Word](nBits uint64) (nBlocks uint64, padMask W) {
	nBlocks = nBits >> wordShift[W]()
	rest := nBits & wordMask[W]()
	switch {
	case rest != 0:
		nBlocks++
		padMask = ^(^W(0) << rest)
	case nBits != 0:
		padMask = ^W(0)
	}
	return
}
