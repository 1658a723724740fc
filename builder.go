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
	"log/slog"

	"github.com/klauspost/cpuid/v2"
)

// Builder is a fluent configuration object for Filter[B]. Construct one
// with NewBuilder[B], configure it with exactly one of Bits/FromWords and
// exactly one of ExpectedItems/Hashes, optionally call Seed and/or
// HasherFactory, then call Build or Items.
//
// A Builder with no sizing call configured panics at Build time: unlike
// Insert/Contains, construction is allowed to fail loudly, since a
// misconfigured builder is a programming error, not a runtime condition.
type Builder[B block] struct {
	numBits  int
	words    []uint64
	fromVec  bool
	expected int
	hashes   int
	haveSize bool
	hasher   HasherFactory
	seed     uint64
}

// NewBuilder returns a Builder for a Filter[B] with the default hasher
// (DefaultHasher).
func NewBuilder[B block]() *Builder[B] {
	return &Builder[B]{hasher: DefaultHasher}
}

// Bits sets the filter's bit budget. It is rounded up to a multiple of
// the block size at Build time.
func (b *Builder[B]) Bits(n int) *Builder[B] {
	b.numBits = n
	b.fromVec = false
	b.haveSize = true
	return b
}

// FromWords adopts an existing word vector as the filter's backing
// buffer, rounding its length up to a multiple of the block's word count
// by zero-padding. Combine with Build (not Items) to reconstruct a filter
// previously exported via Filter.AsWords.
func (b *Builder[B]) FromWords(words []uint64) *Builder[B] {
	b.words = words
	b.fromVec = true
	b.haveSize = true
	return b
}

// ExpectedItems sets the expected number of distinct keys, triggering the
// parameter calculator at Build time to choose the split between
// signature rounds and sparse hashes.
func (b *Builder[B]) ExpectedItems(n int) *Builder[B] {
	b.expected = n
	b.hashes = 0
	return b
}

// Hashes sets an explicit target total hash count per item, bypassing the
// calculator's choice of T* (but not the rounds/sparse-hash split, which
// still applies to the explicit value).
func (b *Builder[B]) Hashes(target int) *Builder[B] {
	b.hashes = target
	b.expected = 0
	return b
}

// HasherFactory overrides the default hasher (xxhash) with f.
func (b *Builder[B]) HasherFactory(f HasherFactory) *Builder[B] {
	b.hasher = f
	return b
}

// Seed sets the seed folded into every key's hash, so that two filters
// built with identical configuration but different seeds hash the same
// keys to unrelated positions (and Equal reports them as distinct). The
// default seed is 0. Use different seeds to build independent filters
// over the same keys, e.g. for a layered or partitioned Bloom filter.
func (b *Builder[B]) Seed(seed uint64) *Builder[B] {
	b.seed = seed
	return b
}

// Build constructs the Filter. It panics if neither Bits nor FromWords
// was called, and panics with ErrInvalidSize if Bits was given fewer than
// one bit or FromWords an empty vector, mirroring the lower-level
// constructors' "zero bits / empty vector" rule.
func (b *Builder[B]) Build() *Filter[B] {
	if !b.haveSize {
		panic("blockbloom: Builder: call Bits or FromWords before Build")
	}

	var bits *BlockedBitVector[B]
	var err error
	if b.fromVec {
		bits, err = FromWords[B](b.words)
		if err != nil {
			panic(err)
		}
		if rem := len(b.words) % wordsPerBlock[B](); rem != 0 {
			slog.Debug("blockbloom: word vector length misaligned, zero-padded",
				"words", len(b.words), "wordsPerBlock", wordsPerBlock[B]())
		}
	} else {
		wpb := wordsPerBlock[B]()
		blockBits := wpb * wordSize
		numBits := b.numBits
		if numBits < 1 {
			panic(ErrInvalidSize)
		}
		numBlocks := (numBits + blockBits - 1) / blockBits
		bits, err = NewBlockedBitVector[B](numBlocks)
		if err != nil {
			panic(err)
		}
	}

	wpb := wordsPerBlock[B]()
	blockBits := wpb * wordSize

	target := b.hashes
	if target == 0 {
		itemsPerBlock := float64(b.expected) / float64(bits.NumBlocks())
		target = targetHashesFor(blockBits, itemsPerBlock)
	}
	if target < 1 {
		target = 1
	}

	numRounds, hasRounds, numHashes := splitHashes(wpb, target)

	hasher := b.hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &Filter[B]{
		bits:         bits,
		targetHashes: target,
		hasRounds:    hasRounds,
		numRounds:    numRounds,
		numHashes:    numHashes,
		hasher:       hasher,
		seed:         b.seed,
	}
}

// Items is shorthand for Build followed by Extend(items).
func (b *Builder[B]) Items(items ...[]byte) *Filter[B] {
	f := b.Build()
	f.Extend(items)
	return f
}

// RecommendedBlockBits inspects the running CPU's L1 data cache line size
// (via klauspost/cpuid) and returns the block size in bits — 512, 256,
// 128 or 64 — that best matches it, giving a concrete answer to "what
// block size should I pick" beyond "512 unless you have a reason not to".
func RecommendedBlockBits() int {
	lineBits := cpuid.CPU.CacheLine * 8
	switch {
	case lineBits >= 512:
		return 512
	case lineBits >= 256:
		return 256
	case lineBits >= 128:
		return 128
	case lineBits > 0:
		return 64
	default:
		// Cache line size couldn't be detected; 512 matches the L1 line
		// of essentially every amd64/arm64 core in production today.
		return 512
	}
}
