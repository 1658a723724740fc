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

// Filter is a blocked Bloom filter specialized for block size B (one of
// Block64, Block128, Block256 or Block512). Construct one with
// NewBuilder[B]; the zero value is not usable.
type Filter[B block] struct {
	bits *BlockedBitVector[B]

	// targetHashes is the intent cached at construction time: num_hashes
	// + (B/64)*num_rounds as originally computed, not recomputed from the
	// post-split fields. NumHashes reports this value for API stability,
	// per spec §9's note to preserve that behavior.
	targetHashes int

	hasRounds bool
	numRounds int
	numHashes int

	hasher HasherFactory
	seed   uint64
}

// Insert adds key to f. Insert is monotonic: once a bit is set it is
// never cleared, so Contains is monotonic in the set of inserted keys.
func (f *Filter[B]) Insert(key []byte) {
	h1, h2 := seedPair(f.hasher, f.seed, key)
	bi := blockIndex(f.bits.NumBlocks(), h1)
	blk := f.bits.GetBlockMut(bi)

	// Sparse hashes first, signature rounds second: both phases consume
	// from the same h1 stream, so Contains must replay them in the same
	// order or the two will disagree.
	for i := 0; i < f.numHashes; i++ {
		h := nextHash(&h1, h2)
		setForBlock(blk, int(h%uint64(len(blk)*wordSize)))
	}

	if f.hasRounds {
		for j := range blk {
			blk[j] |= signature(&h1, h2, f.numRounds)
		}
	}
}

// Contains reports whether key may have been inserted into f. It never
// returns a false negative: if key was inserted, Contains(key) is always
// true. It may return a false positive for a key never inserted.
func (f *Filter[B]) Contains(key []byte) bool {
	h1, h2 := seedPair(f.hasher, f.seed, key)
	bi := blockIndex(f.bits.NumBlocks(), h1)
	blk := f.bits.GetBlock(bi)

	for i := 0; i < f.numHashes; i++ {
		h := nextHash(&h1, h2)
		if !checkForBlock(blk, int(h%uint64(len(blk)*wordSize))) {
			return false
		}
	}

	if f.hasRounds {
		for j := range blk {
			mask := signature(&h1, h2, f.numRounds)
			if blk[j]&mask != mask {
				return false
			}
		}
	}

	return true
}

// Extend inserts every key in keys, equivalent to calling Insert in a
// loop.
func (f *Filter[B]) Extend(keys [][]byte) {
	for _, k := range keys {
		f.Insert(k)
	}
}

// NumHashes returns the target total hash count per item cached at
// construction time, not recomputed from the split fields. The split is
// exact, so the value always equals numHashes + (B/64)*numRounds.
//
// The underlying count is never negative or large enough to need more
// than 32 bits; it's returned as int, Go's idiomatic counting type,
// rather than uint32.
func (f *Filter[B]) NumHashes() int {
	return f.targetHashes
}

// NumBits returns the total number of bits backing f.
func (f *Filter[B]) NumBits() int {
	return f.bits.NumBits()
}

// NumBlocks returns the total number of blocks backing f.
func (f *Filter[B]) NumBlocks() int {
	return f.bits.NumBlocks()
}

// AsWords returns the raw word slice backing f, the canonical portable
// form: a filter built via NewBuilder[B]().FromWords(f.AsWords()) with
// the same hasher, seed and (numRounds, numHashes) behaves identically to
// f.
func (f *Filter[B]) AsWords() []uint64 {
	return f.bits.AsWords()
}

// Clone returns a Filter with an independent copy of f's backing buffer.
func (f *Filter[B]) Clone() *Filter[B] {
	return &Filter[B]{
		bits:         f.bits.Clone(),
		targetHashes: f.targetHashes,
		hasRounds:    f.hasRounds,
		numRounds:    f.numRounds,
		numHashes:    f.numHashes,
		hasher:       f.hasher,
		seed:         f.seed,
	}
}

// Equal reports whether f and g have identical bit content and hash
// configuration, including seed. It does not (and cannot) verify that the
// two filters' hasher factories produce identical output for the same
// input.
func (f *Filter[B]) Equal(g *Filter[B]) bool {
	return f.numHashes == g.numHashes &&
		f.numRounds == g.numRounds &&
		f.hasRounds == g.hasRounds &&
		f.seed == g.seed &&
		f.bits.Equal(g.bits)
}

// FPRate estimates f's false-positive rate after nkeys distinct keys have
// been inserted, using the same Poisson-weighted model as the package
// level FPRate function.
func (f *Filter[B]) FPRate(nkeys int) float64 {
	blockBits := wordsPerBlock[B]() * wordSize
	return FPRate(blockBits, nkeys, f.NumBits(), f.targetHashes)
}
