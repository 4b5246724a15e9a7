// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitset

import (
	"slices"
	"strings"
)

// OneWay is a runtime-sized bitset whose bits can be set individually but
// only cleared all at once, with Reset.  The size is fixed by New; only
// CopyFrom and MoveFrom can give an existing OneWay a different size.
//
// The zero value is an empty (Len() == 0) set, ready to use.
//
// A OneWay is not safe for concurrent use.  The intended pattern for
// concurrent accumulation is one private OneWay per goroutine, periodically
// merged into a shared aggregate under a caller-held lock.
type OneWay[W Word] struct {
	// nBits is the number of semantic bits, excluding padding.
	nBits uint64
	// blocks holds the bits; bit i lives at blocks[i/W] bit i%W.  Padding
	// bits of the last block are always zero.
	blocks []W
	// padMask has exactly the semantic bits of the last block set.
	padMask W
	// dirty is false iff no bit has been set since construction or the last
	// Reset.  A true value does not prove that any bit is set.
	dirty bool
}

// New returns a OneWay of nBits bits, all zero.  No storage is allocated when
// nBits is zero.  Like make, New crashes the program if the storage cannot be
// allocated.
func New[W Word](nBits uint64) *OneWay[W] {
	nBlocks, padMask := layout[W](nBits)
	s := &OneWay[W]{nBits: nBits, padMask: padMask}
	if nBlocks > 0 {
		s.blocks = make([]W, nBlocks)
	}
	return s
}

// Clone returns a deep copy of s.
func (s *OneWay[W]) Clone() *OneWay[W] {
	return &OneWay[W]{
		nBits:   s.nBits,
		blocks:  slices.Clone(s.blocks),
		padMask: s.padMask,
		dirty:   s.dirty,
	}
}

// CopyFrom makes s a deep copy of src, adopting its size.  Storage is reused
// when the block counts agree.
func (s *OneWay[W]) CopyFrom(src *OneWay[W]) {
	if s == src {
		return
	}
	if len(s.blocks) != len(src.blocks) {
		s.blocks = nil
		if len(src.blocks) > 0 {
			s.blocks = make([]W, len(src.blocks))
		}
	}
	copy(s.blocks, src.blocks)
	s.nBits = src.nBits
	s.padMask = src.padMask
	s.dirty = src.dirty
}

// MoveFrom transfers src's storage and size to s and leaves src empty
// (Len() == 0).  s's previous storage is dropped.  MoveFrom(s) is a no-op.
func (s *OneWay[W]) MoveFrom(src *OneWay[W]) {
	if s == src {
		return
	}
	*s = *src
	*src = OneWay[W]{}
}

// Len returns the number of bits in s.
func (s *OneWay[W]) Len() uint64 { return s.nBits }

// NumBlocks returns the number of storage blocks.
func (s *OneWay[W]) NumBlocks() int { return len(s.blocks) }

// PadMask returns the mask of semantic bits in the last block.
func (s *OneWay[W]) PadMask() W { return s.padMask }

// BlockBits returns the width of a storage block.
func (s *OneWay[W]) BlockBits() uint { return BitsPerWord[W]() }

// Empty returns whether s has zero bits.
func (s *OneWay[W]) Empty() bool { return s.nBits == 0 }

// Reset clears every bit.
func (s *OneWay[W]) Reset() {
	clear(s.blocks)
	s.dirty = false
}

// Set sets bit i.  i must be in [0, Len()); this is not checked.
func (s *OneWay[W]) Set(i uint64) {
	s.blocks[i>>wordShift[W]()] |= W(1) << (i & wordMask[W]())
	s.dirty = true
}

// SetBlockBit sets bit number bit of block number block, i.e. bit
// block*BlockBits()+bit.  It is meant for callers that already iterate
// block-wise.  block must be in [0, NumBlocks()) and bit in [0, BlockBits());
// neither is checked.
func (s *OneWay[W]) SetBlockBit(block int, bit uint) {
	s.blocks[block] |= W(1) << bit
	s.dirty = true
}

// SetAll sets every bit.  It is a no-op on an empty set.
func (s *OneWay[W]) SetAll() {
	last := len(s.blocks) - 1
	if last < 0 {
		return
	}
	for i := range s.blocks[:last] {
		s.blocks[i] = ^W(0)
	}
	s.blocks[last] = s.padMask
	s.dirty = true
}

// Get returns bit i.  i must be in [0, Len()); this is not checked.
func (s *OneWay[W]) Get(i uint64) bool {
	return (s.blocks[i>>wordShift[W]()]>>(i&wordMask[W]()))&1 != 0
}

// GetBlockBit returns bit number bit of block number block.  Same contract as
// SetBlockBit.
func (s *OneWay[W]) GetBlockBit(block int, bit uint) bool {
	return (s.blocks[block]>>bit)&1 != 0
}

// GetAll writes every bit of s to out[:Len()].  It panics if len(out) <
// Len().
func (s *OneWay[W]) GetAll(out []bool) {
	out = out[:s.nBits]
	clear(out)
	if !s.dirty {
		return
	}
	blockBits := uint64(BitsPerWord[W]())
	var offset uint64
	for _, v := range s.blocks {
		// Bits above the highest set bit are already false.
		for i := offset; v != 0; i++ {
			out[i] = v&1 != 0
			v >>= 1
		}
		offset += blockBits
	}
}

// Bools returns the bits of s as a newly allocated []bool of length Len().
func (s *OneWay[W]) Bools() []bool {
	out := make([]bool, s.nBits)
	s.GetAll(out)
	return out
}

// Any returns whether any bit is set, in O(1): bits are never cleared
// individually, so the cached flag cannot go stale.
func (s *OneWay[W]) Any() bool { return s.dirty }

// None returns !Any().
func (s *OneWay[W]) None() bool { return !s.dirty }

// All returns whether every bit is set.  It is false for an empty set.
func (s *OneWay[W]) All() bool {
	if !s.dirty || s.nBits == 0 {
		return false
	}
	last := len(s.blocks) - 1
	for _, v := range s.blocks[:last] {
		if v != ^W(0) {
			return false
		}
	}
	return s.blocks[last] == s.padMask
}

// Count returns the number of set bits.  The cost is proportional to the
// number of blocks plus the number of set bits.
func (s *OneWay[W]) Count() uint64 {
	if !s.dirty {
		return 0
	}
	var n uint64
	for _, v := range s.blocks {
		for v != 0 {
			v &= v - 1
			n++
		}
	}
	return n
}

// Merge sets s to s | other.  It is a no-op when the sizes differ; use
// MergeChecked to detect that case.
func (s *OneWay[W]) Merge(other *OneWay[W]) {
	if s.nBits != other.nBits {
		return
	}
	for i, v := range other.blocks {
		s.blocks[i] |= v
	}
	s.dirty = s.dirty || other.dirty
}

// Merged returns a new set equal to a | b, leaving both untouched.  If the
// sizes differ the result is a copy of a.
func Merged[W Word](a, b *OneWay[W]) *OneWay[W] {
	s := a.Clone()
	s.Merge(b)
	return s
}

// Equal returns whether s and other have the same size and the same bits.
func (s *OneWay[W]) Equal(other *OneWay[W]) bool {
	if s.nBits != other.nBits {
		return false
	}
	return slices.Equal(s.blocks, other.blocks)
}

// String renders s as a string of '0' and '1', bit 0 first.
func (s *OneWay[W]) String() string {
	var b strings.Builder
	b.Grow(int(s.nBits))
	for i := uint64(0); i < s.nBits; i++ {
		if s.Get(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
