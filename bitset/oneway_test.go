// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitset_test

import (
	"flag"
	"math/rand"
	"testing"

	"github.com/go-test/deep"
	fuzz "github.com/google/gofuzz"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/onewaybits/bitset"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	wbitset "github.com/willf/bitset"
)

var hugeFlag = flag.Bool("bitset.huge", false, "run tests that allocate two 20 Gbit bitsets (~5 GiB)")

// checkBits verifies s against ref both bit by bit and through GetAll.
func checkBits[W bitset.Word](t *testing.T, s *bitset.OneWay[W], ref []bool) {
	t.Helper()
	assert.EQ(t, s.Len(), uint64(len(ref)))
	for i, want := range ref {
		if got := s.Get(uint64(i)); got != want {
			t.Fatalf("bit %d: got %v, want %v (bits %s)", i, got, want, s)
		}
	}
	if diff := deep.Equal(s.Bools(), ref); diff != nil {
		t.Fatalf("GetAll mismatch: %v", diff)
	}
}

func TestFresh(t *testing.T) {
	for _, n := range []uint64{0, 1, 7, 8, 9, 17, 63, 64, 65, 1000} {
		s := bitset.New[uint8](n)
		expect.EQ(t, s.Count(), uint64(0))
		expect.True(t, s.None())
		expect.False(t, s.Any())
		expect.False(t, s.All())
		expect.EQ(t, s.Empty(), n == 0)
		checkBits(t, s, make([]bool, n))

		s64 := bitset.New[uint64](n)
		expect.EQ(t, s64.Count(), uint64(0))
		expect.True(t, s64.None())
		expect.False(t, s64.All())
	}
}

func TestZeroValue(t *testing.T) {
	var s bitset.OneWay[uint32]
	expect.True(t, s.Empty())
	expect.True(t, s.None())
	expect.False(t, s.All())
	expect.EQ(t, s.Count(), uint64(0))
	expect.True(t, s.Equal(bitset.New[uint32](0)))
}

func TestLayout(t *testing.T) {
	for _, test := range []struct {
		n       uint64
		nBlocks int
		padMask uint8
	}{
		{0, 0, 0},
		{1, 1, 0x01},
		{7, 1, 0x7f},
		{8, 1, 0xff},
		{9, 2, 0x01},
		{16, 2, 0xff},
		{17, 3, 0x01},
	} {
		s := bitset.New[uint8](test.n)
		expect.EQ(t, s.NumBlocks(), test.nBlocks)
		expect.EQ(t, s.PadMask(), test.padMask)
		expect.EQ(t, s.BlockBits(), uint(8))
	}
	s := bitset.New[uint64](130)
	expect.EQ(t, s.NumBlocks(), 3)
	expect.EQ(t, s.PadMask(), uint64(3))
	expect.EQ(t, bitset.New[uint64](128).PadMask(), ^uint64(0))
}

func TestSetGet(t *testing.T) {
	const n = 100
	s := bitset.New[uint16](n)
	s.Set(42)
	expect.True(t, s.Get(42))
	expect.EQ(t, s.Count(), uint64(1))
	expect.True(t, s.Any())
	expect.False(t, s.None())
	expect.False(t, s.All())

	once := s.Clone()
	s.Set(42)
	expect.True(t, s.Equal(once))
	expect.EQ(t, s.Count(), uint64(1))
}

func TestBlockBit(t *testing.T) {
	a := bitset.New[uint8](20)
	b := bitset.New[uint8](20)
	a.SetBlockBit(1, 3)
	b.Set(11)
	expect.True(t, a.Equal(b))
	expect.True(t, a.GetBlockBit(1, 3))
	expect.False(t, a.GetBlockBit(1, 2))
	expect.True(t, a.Any())
}

func TestSetAllReset(t *testing.T) {
	for _, n := range []uint64{1, 7, 8, 9, 17, 64, 65, 200} {
		s := bitset.New[uint8](n)
		s.SetAll()
		expect.EQ(t, s.Count(), n)
		expect.True(t, s.All())
		ref := make([]bool, n)
		for i := range ref {
			ref[i] = true
		}
		checkBits(t, s, ref)

		s.Reset()
		expect.EQ(t, s.Count(), uint64(0))
		expect.True(t, s.None())
		expect.False(t, s.All())
		checkBits(t, s, make([]bool, n))
	}
}

func TestAllMissingOneBit(t *testing.T) {
	s := bitset.New[uint8](17)
	for i := uint64(0); i < 16; i++ {
		s.Set(i)
	}
	expect.False(t, s.All())
	s.Set(16)
	expect.True(t, s.All())
}

func TestEmpty(t *testing.T) {
	s := bitset.New[uint64](0)
	s.SetAll()
	expect.EQ(t, s.Count(), uint64(0))
	expect.False(t, s.All())
	expect.True(t, s.None())
	expect.EQ(t, len(s.Bools()), 0)
	s.Merge(bitset.New[uint64](0))
	expect.True(t, s.None())
	expect.EQ(t, s.String(), "")
}

// TestScenario walks through the 17-bit end-to-end scenario with 8-bit
// blocks, so that the last block is mostly padding.
func TestScenario(t *testing.T) {
	const n = 17
	set1 := bitset.New[uint8](n)
	set2 := bitset.New[uint8](n)
	set3 := bitset.New[uint8](n)
	ref := make([]bool, n)
	checkBits(t, set1, ref)
	expect.True(t, set1.Equal(set2))

	set2.Set(7)
	ref[7] = true
	expect.EQ(t, set2.Count(), uint64(1))
	expect.False(t, set2.All())
	checkBits(t, set2, ref)
	expect.False(t, set1.Equal(set2))

	set2.Set(16)
	ref[16] = true
	expect.EQ(t, set2.Count(), uint64(2))
	checkBits(t, set2, ref)
	expect.EQ(t, set2.String(), "00000001000000001")

	set1.Merge(set2)
	checkBits(t, set1, ref)
	expect.True(t, set1.Equal(set2))

	set1.Merge(set3)
	checkBits(t, set1, ref)

	set3.CopyFrom(bitset.Merged(set1.Clone(), set2))
	checkBits(t, set3, ref)

	set3.SetAll()
	expect.EQ(t, set3.Count(), uint64(n))
	expect.True(t, set3.All())

	set3.Reset()
	expect.EQ(t, set3.Count(), uint64(0))
	expect.True(t, set3.None())
	expect.False(t, set3.Any())
	expect.False(t, set3.All())
}

func TestMerge(t *testing.T) {
	const n = 300
	r := rand.New(rand.NewSource(1))
	a := bitset.New[uint32](n)
	b := bitset.New[uint32](n)
	for i := 0; i < 40; i++ {
		a.Set(uint64(r.Intn(n)))
		b.Set(uint64(r.Intn(n)))
	}
	ab := a.Clone()
	ab.Merge(b)
	ba := b.Clone()
	ba.Merge(a)
	expect.True(t, ab.Equal(ba))
	expect.True(t, ab.Equal(bitset.Merged(a, b)))

	again := ab.Clone()
	again.Merge(b)
	expect.True(t, again.Equal(ab))

	again.Merge(bitset.New[uint32](n))
	expect.True(t, again.Equal(ab))

	for i := uint64(0); i < n; i++ {
		expect.EQ(t, ab.Get(i), a.Get(i) || b.Get(i))
	}
}

func TestMergeZeroFlag(t *testing.T) {
	a := bitset.New[uint8](10)
	b := bitset.New[uint8](10)
	a.Merge(b)
	expect.True(t, a.None())
	b.Set(3)
	a.Merge(b)
	expect.True(t, a.Any())
	expect.EQ(t, a.Count(), uint64(1))
}

func TestMergedLeavesInputs(t *testing.T) {
	a := bitset.New[uint8](12)
	b := bitset.New[uint8](12)
	a.Set(1)
	b.Set(10)
	m := bitset.Merged(a, b)
	expect.EQ(t, m.Count(), uint64(2))
	expect.EQ(t, a.Count(), uint64(1))
	expect.EQ(t, b.Count(), uint64(1))
	expect.False(t, a.Get(10))
}

func TestMergeSizeMismatch(t *testing.T) {
	a := bitset.New[uint8](17)
	a.Set(3)
	before := a.Clone()
	b := bitset.New[uint8](16)
	b.SetAll()
	a.Merge(b)
	expect.True(t, a.Equal(before))

	err := a.MergeChecked(b)
	expect.True(t, errors.Is(errors.Invalid, err))
	expect.HasSubstr(t, err.Error(), "size mismatch")
	expect.True(t, a.Equal(before))

	c := bitset.New[uint8](17)
	c.Set(9)
	assert.NoError(t, a.MergeChecked(c))
	expect.EQ(t, a.Count(), uint64(2))
}

func TestEqual(t *testing.T) {
	a := bitset.New[uint8](17)
	b := bitset.New[uint8](17)
	a.Set(1)
	a.Set(5)
	b.Set(5)
	b.Set(1)
	b.Set(5)
	expect.True(t, a.Equal(b))

	// Same observable prefix, different size.
	c := bitset.New[uint8](16)
	c.Set(1)
	c.Set(5)
	expect.False(t, a.Equal(c))
	expect.False(t, c.Equal(a))
	expect.False(t, bitset.New[uint8](8).Equal(bitset.New[uint8](9)))
}

func TestCopyMove(t *testing.T) {
	a := bitset.New[uint8](17)
	a.Set(16)

	b := a.Clone()
	b.Set(0)
	expect.EQ(t, a.Count(), uint64(1))
	expect.EQ(t, b.Count(), uint64(2))

	// Copy assignment adopts the source size.
	c := bitset.New[uint8](3)
	c.CopyFrom(a)
	expect.True(t, c.Equal(a))
	expect.EQ(t, c.NumBlocks(), 3)
	c.CopyFrom(c)
	expect.True(t, c.Equal(a))

	d := bitset.New[uint8](100)
	d.MoveFrom(b)
	expect.EQ(t, d.Len(), uint64(17))
	expect.EQ(t, d.Count(), uint64(2))
	expect.True(t, b.Empty())
	expect.True(t, b.None())
	expect.EQ(t, b.NumBlocks(), 0)
	expect.EQ(t, b.PadMask(), uint8(0))

	d.MoveFrom(d)
	expect.EQ(t, d.Count(), uint64(2))
}

func TestChecked(t *testing.T) {
	s := bitset.New[uint8](17)
	assert.NoError(t, s.SetChecked(16))
	err := s.SetChecked(17)
	expect.True(t, errors.Is(errors.Invalid, err))
	expect.HasSubstr(t, err.Error(), "out of range")

	v, err := s.GetChecked(16)
	assert.NoError(t, err)
	expect.True(t, v)
	_, err = s.GetChecked(1 << 40)
	expect.True(t, errors.Is(errors.Invalid, err))
	expect.EQ(t, s.Count(), uint64(1))
}

// TestRandomized replays fuzzed index sequences against a []bool reference and
// against willf/bitset.
func TestRandomized(t *testing.T) {
	fz := fuzz.New().NilChance(0).NumElements(0, 200)
	for iter := 0; iter < 200; iter++ {
		var (
			n16     uint16
			indices []uint32
		)
		fz.Fuzz(&n16)
		fz.Fuzz(&indices)
		n := uint64(n16%2000) + 1

		s8 := bitset.New[uint8](n)
		s64 := bitset.New[uint64](n)
		ref := make([]bool, n)
		oracle := wbitset.New(uint(n))
		for _, idx := range indices {
			i := uint64(idx) % n
			s8.Set(i)
			s64.Set(i)
			ref[i] = true
			oracle.Set(uint(i))
		}
		checkBits(t, s8, ref)
		checkBits(t, s64, ref)
		expect.EQ(t, s8.Count(), uint64(oracle.Count()))
		expect.EQ(t, s64.Count(), uint64(oracle.Count()))
		expect.EQ(t, s8.All(), oracle.All())
		expect.EQ(t, s8.Any(), len(indices) > 0)

		s8.Reset()
		checkBits(t, s8, make([]bool, n))
	}
}

func TestHuge(t *testing.T) {
	if !*hugeFlag {
		t.Skip("pass -bitset.huge to run")
	}
	const n = 20000000000
	a := bitset.New[uint8](n)
	b := bitset.New[uint8](n)
	var want uint64
	for i := uint64(0); i < n; i += 3 {
		a.Set(i)
		want++
	}
	expect.EQ(t, a.Count(), want)
	b.Merge(a)
	expect.EQ(t, b.Count(), want)
	b.Set(n - 1)
	expect.True(t, b.Get(n-1))
	a.Reset()
	b.Reset()
	expect.True(t, a.None())
	expect.True(t, b.None())
}
