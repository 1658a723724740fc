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

import "math/bits"

// BlockedBitVector is a flat buffer of 64-bit words, logically chunked
// into fixed-size blocks of len(B) words (B/64 for a B-bit block). It is
// the backing store of a Filter; nothing in this type knows about hashes
// or items.
//
// The zero value is not usable; construct one with NewBlockedBitVector or
// FromWords.
type BlockedBitVector[B block] struct {
	words []uint64
	wpb   int // words per block, cached from len(B{}).
}

// wordsPerBlock returns B/64, the number of uint64 words in one block of
// type B.
func wordsPerBlock[B block]() int {
	var b B
	return len(b)
}

// NewBlockedBitVector allocates a zero-initialized vector of numBlocks
// blocks. It fails if numBlocks is zero.
func NewBlockedBitVector[B block](numBlocks int) (*BlockedBitVector[B], error) {
	if numBlocks <= 0 {
		return nil, ErrInvalidSize
	}

	wpb := wordsPerBlock[B]()
	return &BlockedBitVector[B]{
		words: make([]uint64, numBlocks*wpb),
		wpb:   wpb,
	}, nil
}

// FromWords adopts words as the backing buffer, rounding its length up to
// a multiple of the block's word count by zero-padding a copy. It fails
// if words is empty.
func FromWords[B block](words []uint64) (*BlockedBitVector[B], error) {
	if len(words) == 0 {
		return nil, ErrInvalidSize
	}

	wpb := wordsPerBlock[B]()
	if rem := len(words) % wpb; rem != 0 {
		padded := make([]uint64, len(words)+(wpb-rem))
		copy(padded, words)
		words = padded
	} else {
		// Adopt a private copy so callers can't mutate through a stale
		// reference to the slice they passed in.
		owned := make([]uint64, len(words))
		copy(owned, words)
		words = owned
	}

	return &BlockedBitVector[B]{words: words, wpb: wpb}, nil
}

// NumBlocks returns the current block count.
func (v *BlockedBitVector[B]) NumBlocks() int {
	return len(v.words) / v.wpb
}

// NumBits returns the total number of bits tracked by v.
func (v *BlockedBitVector[B]) NumBits() int {
	return len(v.words) * wordSize
}

// GetBlock returns a view of the B/64 words at block index i.
func (v *BlockedBitVector[B]) GetBlock(i int) []uint64 {
	return v.words[i*v.wpb : (i+1)*v.wpb]
}

// GetBlockMut returns a mutable view of the B/64 words at block index i.
//
// Go slices are reference types, so this returns the same view as
// GetBlock; the separate name exists to mirror the read/write split in
// the underlying contract for callers porting code from it.
func (v *BlockedBitVector[B]) GetBlockMut(i int) []uint64 {
	return v.GetBlock(i)
}

// AsWords returns the raw backing slice, for export via Filter.AsWords.
func (v *BlockedBitVector[B]) AsWords() []uint64 {
	return v.words
}

// Clone returns a BlockedBitVector with an independent copy of v's words.
func (v *BlockedBitVector[B]) Clone() *BlockedBitVector[B] {
	words := make([]uint64, len(v.words))
	copy(words, v.words)
	return &BlockedBitVector[B]{words: words, wpb: v.wpb}
}

// Equal reports whether v and o have identical word content.
func (v *BlockedBitVector[B]) Equal(o *BlockedBitVector[B]) bool {
	if len(v.words) != len(o.words) {
		return false
	}
	for i, w := range v.words {
		if w != o.words[i] {
			return false
		}
	}
	return true
}

// onesCount returns the number of set bits across the whole vector.
func (v *BlockedBitVector[B]) onesCount() int {
	n := 0
	for _, w := range v.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// setForBlock sets bit (offset modulo the block width) of block.
func setForBlock(b []uint64, offset int) {
	n := len(b)
	b[(offset/wordSize)%n] |= 1 << uint(offset%wordSize)
}

// checkForBlock reports whether bit (offset modulo the block width) of
// block is set.
func checkForBlock(b []uint64, offset int) bool {
	n := len(b)
	return b[(offset/wordSize)%n]&(1<<uint(offset%wordSize)) != 0
}
