// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bitset

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

func (s *OneWay[W]) checkIndex(op string, i uint64) error {
	if i < s.nBits {
		return nil
	}
	return errors.E(errors.Invalid, fmt.Sprintf("bitset.%s: index %d out of range [0, %d)", op, i, s.nBits))
}

// SetChecked is Set with a bounds check.  It returns an errors.Invalid error,
// and leaves s unchanged, when i >= Len().
func (s *OneWay[W]) SetChecked(i uint64) error {
	if err := s.checkIndex("SetChecked", i); err != nil {
		return err
	}
	s.Set(i)
	return nil
}

// GetChecked is Get with a bounds check.
func (s *OneWay[W]) GetChecked(i uint64) (bool, error) {
	if err := s.checkIndex("GetChecked", i); err != nil {
		return false, err
	}
	return s.Get(i), nil
}

// MergeChecked is Merge, except that it returns an errors.Invalid error
// instead of silently doing nothing when the sizes differ.
func (s *OneWay[W]) MergeChecked(other *OneWay[W]) error {
	if s.nBits != other.nBits {
		return errors.E(errors.Invalid, fmt.Sprintf("bitset.MergeChecked: size mismatch: %d != %d", s.nBits, other.nBits))
	}
	s.Merge(other)
	return nil
}
