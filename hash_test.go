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
	"math/rand"
	"testing"
)

// assertEvenDistribution mirrors the original Rust crate's
// assert_even_distribution helper: every bucket must be within err of the
// mean.
func assertEvenDistribution(t *testing.T, distr []uint64, err float64) {
	t.Helper()
	if err <= 0 || err >= 1 {
		t.Fatalf("err must be in (0, 1), got %v", err)
	}

	var sum uint64
	for _, x := range distr {
		sum += x
	}
	expected := int64(sum / uint64(len(distr)))
	thresh := int64(float64(expected) * err)

	for i, x := range distr {
		diff := int64(x) - expected
		if diff < 0 {
			diff = -diff
		}
		if diff > thresh {
			t.Errorf("bucket %d (%d) deviates from mean %d by more than %d", i, x, expected, thresh)
		}
	}
}

// Bit-position uniformity (spec.md §8, scenario 4): next_hash's derived
// offsets modulo B should be close to uniform.
func TestNextHashUniformity(t *testing.T) {
	for _, size := range []int{1, 10, 100, 1000} {
		r := rand.New(rand.NewSource(524323))
		h1 := r.Uint64()
		h2 := r.Uint64()

		counts := make([]uint64, size)
		iterations := size * 10000
		for i := 0; i < iterations; i++ {
			h := nextHash(&h1, h2)
			counts[h%uint64(size)]++
		}
		assertEvenDistribution(t, counts, 0.05)
	}
}

// Scenario 4: bit_index output over many samples from a single-block
// filter is approximately uniform across [0, B).
func TestBitIndexUniformity(t *testing.T) {
	testIndexUniformity[Block512](t, 0.05)
	testIndexUniformity[Block256](t, 0.05)
	testIndexUniformity[Block128](t, 0.05)
	testIndexUniformity[Block64](t, 0.05)
}

func testIndexUniformity[B block](t *testing.T, thresh float64) {
	t.Helper()
	n := wordsPerBlock[B]() * wordSize

	h1, h2 := seedPair(DefaultHasher, 0, []byte("qwerty"))
	counts := make([]uint64, n)
	iterations := 10000 * n
	for i := 0; i < iterations; i++ {
		h := nextHash(&h1, h2)
		counts[int(h%uint64(n))]++
	}
	assertEvenDistribution(t, counts, thresh)
}

// Block uniformity: inserting uniform random items into K blocks spreads
// the block selection roughly evenly.
func TestBlockIndexUniformity(t *testing.T) {
	for _, numBlocks := range []int{2, 7, 10, 100} {
		buckets := make([]uint64, numBlocks)
		r := rand.New(rand.NewSource(42))
		for i := 0; i < numBlocks*10000; i++ {
			key := make([]byte, 8)
			r.Read(key)
			h1, _ := seedPair(DefaultHasher, 0, key)
			buckets[blockIndex(numBlocks, h1)]++
		}
		assertEvenDistribution(t, buckets, 0.05)
	}
}

func TestSeedPairDeterministic(t *testing.T) {
	key := []byte("the quick brown fox")
	h1a, h2a := seedPair(DefaultHasher, 7, key)
	h1b, h2b := seedPair(DefaultHasher, 7, key)
	if h1a != h1b || h2a != h2b {
		t.Fatal("seedPair is not deterministic for identical input")
	}
}

func TestSeedPairDependsOnSeed(t *testing.T) {
	key := []byte("the quick brown fox")
	h1a, h2a := seedPair(DefaultHasher, 1, key)
	h1b, h2b := seedPair(DefaultHasher, 2, key)
	if h1a == h1b && h2a == h2b {
		t.Fatal("seedPair produced identical output for different seeds")
	}
}
