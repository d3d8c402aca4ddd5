// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nameop_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/nameop"
)

func TestCommitment(t *testing.T) {
	// hash160 of the empty string
	assert.Equal(t, "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb", hex.EncodeToString(nameop.Commitment(nil, nil)))

	salt := []byte{1, 2, 3}
	c1 := nameop.Commitment(salt, []byte("alice"))
	c2 := nameop.Commitment(salt, []byte("alicf"))
	assert.Equal(t, nameop.CommitmentLength, len(c1))
	assert.NotEqual(t, c1, c2)
}

func TestBuildReservation(t *testing.T) {
	name := []byte("d/alice")
	fixed := bytes.NewReader([]byte{9, 8, 7, 6, 5, 4, 3, 2})

	script, salt, err := nameop.BuildNewScript(name, fixed)
	assert.Nil(t, err)
	assert.Equal(t, []byte{9, 8, 7, 6, 5, 4, 3, 2}, salt)

	op, consumed, ok := nameop.Decode(script)
	assert.True(t, ok)
	assert.Equal(t, len(script), consumed)
	assert.Equal(t, nameop.New, op.Kind)
	assert.Nil(t, op.Check())

	script, err = nameop.BuildFirstUpdateScript(name, salt, []byte("hello"))
	assert.Nil(t, err)
	reveal, _, ok := nameop.Decode(script)
	assert.True(t, ok)
	assert.True(t, reveal.Matches(op.Commitment()), "reveal does not match commitment")

	wrong, err := nameop.FirstUpdateOperation(name, []byte{1}, []byte("hello"))
	assert.Nil(t, err)
	assert.False(t, wrong.Matches(op.Commitment()), "wrong salt matches commitment")
}

func TestBuildRandomSalt(t *testing.T) {
	_, salt1, err := nameop.BuildNewScript([]byte("x"), rand.Reader)
	assert.Nil(t, err)
	_, salt2, err := nameop.BuildNewScript([]byte("x"), rand.Reader)
	assert.Nil(t, err)

	assert.Equal(t, nameop.SaltLength, len(salt1))
	assert.NotEqual(t, salt1, salt2, "salts repeated")
}

func TestBuildLimits(t *testing.T) {
	_, _, err := nameop.BuildNewScript(repeat(256), rand.Reader)
	assert.Equal(t, fault.ErrNameTooLong, err)

	_, err = nameop.BuildFirstUpdateScript([]byte("n"), repeat(21), nil)
	assert.Equal(t, fault.ErrSaltTooLong, err)

	_, err = nameop.BuildUpdateScript([]byte("n"), repeat(1024))
	assert.Equal(t, fault.ErrValueTooLong, err)

	script, err := nameop.BuildUpdateScript([]byte("n"), []byte("v"))
	assert.Nil(t, err)
	op, _, ok := nameop.Decode(script)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), op.Value())
}
