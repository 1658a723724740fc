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

	"github.com/stretchr/testify/assert"
)

func TestOptimizePanicsOnBadRate(t *testing.T) {
	assert.Panics(t, func() { Optimize[Block512](Config{FPRate: 0, NKeys: 10}) })
	assert.Panics(t, func() { Optimize[Block512](Config{FPRate: 1.5, NKeys: 10}) })
}

func TestOptimizeMeetsBitBudget(t *testing.T) {
	const n = 100000
	f := NewOptimized[Block512](Config{FPRate: .01, NKeys: n})

	// For FPR = .01, n = 100000, the optimal bit count for a vanilla
	// Bloom filter is ~958505.84; a blocked filter needs at least that
	// many bits.
	assert.GreaterOrEqual(t, f.NumBits(), 958506)
}

func falsePositiveRate(f interface {
	Contains([]byte) bool
}, control map[uint64]bool, antiVals []uint64) float64 {
	var total, fp int
	for _, x := range antiVals {
		if control[x] {
			continue
		}
		total++
		if f.Contains(u64key(x)) {
			fp++
		}
	}
	return float64(fp) / float64(total)
}

// Scenario 6 / "Optimality": at each tested load the calculated hash
// count is compared with (count-1) and (count+1); it must do at least as
// well in more than len(sizes)/2 of those comparisons.
func TestOptimalHashesIsOptimal(t *testing.T) {
	testOptimalHashesIsOptimal[Block512](t)
	testOptimalHashesIsOptimal[Block256](t)
	testOptimalHashesIsOptimal[Block128](t)
	testOptimalHashesIsOptimal[Block64](t)
}

func testOptimalHashesIsOptimal[B block](t *testing.T) {
	t.Helper()
	sizes := []int{1000, 2000, 5000, 6000, 8000, 10000}
	wins := 0

	const numBits = 65000 * 8
	antiVals := randomU64s(100000, 3)

	for _, numItems := range sizes {
		sampleVals := randomU64s(numItems, 42)

		control := make(map[uint64]bool, len(sampleVals))
		for _, v := range sampleVals {
			control[v] = true
		}

		filter := NewBuilder[B]().Bits(numBits).ExpectedItems(numItems).Build()
		for _, v := range sampleVals {
			filter.Insert(u64key(v))
		}
		fpToBeat := falsePositiveRate(filter, control, antiVals)
		optimal := filter.NumHashes()

		for _, nh := range []int{optimal - 1, optimal + 1} {
			if nh < 1 {
				continue
			}
			test := NewBuilder[B]().Bits(numBits).Hashes(nh).Build()
			for _, v := range sampleVals {
				test.Insert(u64key(v))
			}
			fp := falsePositiveRate(test, control, antiVals)
			if fpToBeat <= fp {
				wins++
			}
		}
	}

	assert.Greater(t, wins, len(sizes)/2)
}

func randomU64s(n int, seed int64) []uint64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.Uint64()
	}
	return out
}

// FP monotonicity in capacity (spec.md §8): FP rate should be
// non-increasing in num_bits, with at most one adjacent inversion allowed
// per doubling.
func TestFalsePositiveDecreasesWithSize(t *testing.T) {
	testFalsePositiveDecreasesWithSize[Block512](t)
	testFalsePositiveDecreasesWithSize[Block64](t)
}

func testFalsePositiveDecreasesWithSize[B block](t *testing.T) {
	t.Helper()
	antiVals := randomU64s(1000, 2)
	const size = 100000

	prevFP, prevPrevFP := 1.0, 1.0
	for bitsMag := 9; bitsMag < 22; bitsMag++ {
		numBits := 1 << bitsMag
		sampleVals := randomU64s(size, 1)
		control := make(map[uint64]bool, size)
		for _, v := range sampleVals {
			control[v] = true
		}

		f := NewBuilder[B]().Bits(numBits).ExpectedItems(size).Build()
		for _, v := range sampleVals {
			f.Insert(u64key(v))
		}
		fp := falsePositiveRate(f, control, antiVals)

		if !(fp <= prevFP || prevFP <= prevPrevFP || fp < 0.01) {
			t.Errorf("numBits=%d fp=%.6f regressed past one allowed inversion", numBits, fp)
		}
		prevPrevFP, prevFP = prevFP, fp
	}
}
