// Copyright 2024 the blockbloom authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package blockbloom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockedBitVectorRejectsZero(t *testing.T) {
	_, err := NewBlockedBitVector[Block512](0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFromWordsRejectsEmpty(t *testing.T) {
	_, err := FromWords[Block512](nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFromWordsPadsToBlockMultiple(t *testing.T) {
	v, err := FromWords[Block256](make([]uint64, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, v.NumBlocks())
	assert.Equal(t, 4, len(v.AsWords()))
}

func TestFromWordsExactMultipleUnchanged(t *testing.T) {
	words := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	v, err := FromWords[Block512](words)
	require.NoError(t, err)
	assert.Equal(t, words, v.AsWords())
}

func TestFromWordsCopiesInput(t *testing.T) {
	words := []uint64{1, 2}
	v, err := FromWords[Block128](words)
	require.NoError(t, err)
	words[0] = 999
	assert.Equal(t, uint64(1), v.AsWords()[0])
}

func TestSetCheckForBlock(t *testing.T) {
	v, err := NewBlockedBitVector[Block512](2)
	require.NoError(t, err)

	blk := v.GetBlockMut(1)
	assert.False(t, checkForBlock(blk, 5))
	setForBlock(blk, 5)
	assert.True(t, checkForBlock(blk, 5))

	// The other block is untouched.
	other := v.GetBlock(0)
	for _, w := range other {
		assert.Equal(t, uint64(0), w)
	}
}

func TestEqual(t *testing.T) {
	a, _ := NewBlockedBitVector[Block512](2)
	b, _ := NewBlockedBitVector[Block512](2)
	assert.True(t, a.Equal(b))

	setForBlock(a.GetBlockMut(0), 3)
	assert.False(t, a.Equal(b))
}

func TestCloneIndependentWords(t *testing.T) {
	a, _ := NewBlockedBitVector[Block512](1)
	b := a.Clone()
	setForBlock(a.GetBlockMut(0), 1)
	assert.False(t, a.Equal(b))
}
