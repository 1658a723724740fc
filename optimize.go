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

import "math"

const ln2 = 0.6931471805599453

// splitHashes divides a target total hash count T into whole signature
// rounds (one bit set per word of the block) and leftover sparse hashes,
// per spec §4.3: each round costs one derived hash per word and sets one
// bit in every word; each sparse hash costs one derived hash and sets one
// bit anywhere in the block.
func splitHashes(wordsPerBlock, target int) (numRounds int, hasRounds bool, numHashes int) {
	if target < 1 {
		target = 1
	}
	numRounds = target / wordsPerBlock
	numHashes = target - numRounds*wordsPerBlock
	return numRounds, numRounds > 0, numHashes
}

// targetHashesFor computes T*, the optimal total hash count for a block of
// blockBits bits holding itemsPerBlock items on average, capped so that
// small blocks under heavy load don't get saturated with rounds.
//
// T* = round(blockBits/itemsPerBlock * ln 2), at least 1, capped at
// T_max = (blockBits/64) * hashesForBits(32) * (blockBits/512).
func targetHashesFor(blockBits int, itemsPerBlock float64) int {
	if itemsPerBlock <= 0 {
		itemsPerBlock = 1
	}

	t := math.Round(float64(blockBits) / itemsPerBlock * ln2)
	if t < 1 {
		t = 1
	}

	wpb := float64(blockBits) / wordSize
	tMax := wpb * hashesForBits(32) * (float64(blockBits) / 512)
	if t > tMax {
		t = tMax
	}
	if t < 1 {
		t = 1
	}
	return int(t)
}

// Config holds parameters for Optimize and NewOptimized: the desired
// false-positive rate at a given expected key count, generalizing the
// teacher library's size/hash-count auto-tuning to an arbitrary block
// size.
type Config struct {
	// FPRate is the desired false positive rate once NKeys distinct keys
	// have been inserted. Must be in (0, 1].
	FPRate float64

	// NKeys is the expected number of distinct keys.
	NKeys int

	// MaxBits caps the size of the filter in bits. Zero means no cap.
	MaxBits int
}

// correctC maps c = m/n for a vanilla Bloom filter to the corresponding
// c' for a blocked Bloom filter, extending Putze, Sanders and Singler's
// Table I down to zero. Values beyond the table become huge and are
// impractical to use, so callers asking for c >= len(correctC) get a
// tripled bit budget instead of a precise lookup.
var correctC = []byte{
	1, 1, 2, 4, 5,
	6, 7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 18, 20, 21, 23,
	25, 26, 28, 30, 32, 35, 38, 40, 44, 48, 51, 58, 64, 74, 90,
}

// Optimize returns the number of bits and target hash count that achieve
// cfg's desired false positive rate, for a filter with block size B.
func Optimize[B block](cfg Config) (nbits, nhashes int) {
	if cfg.FPRate <= 0 || cfg.FPRate > 1 {
		panic("blockbloom: false positive rate must be > 0 and <= 1")
	}

	n := float64(cfg.NKeys)
	if n == 0 {
		n = 1
	}

	blockBits := wordsPerBlock[B]() * wordSize

	c := math.Ceil(-math.Log2(cfg.FPRate) / ln2)
	if int(c) < len(correctC) {
		c = float64(correctC[int(c)])
	} else {
		c *= 3
	}
	nbits = int(c * n)

	if rem := nbits % blockBits; rem != 0 {
		nbits += blockBits - rem
	}

	maxBits := (1 << 32) * blockBits
	if cfg.MaxBits != 0 && cfg.MaxBits < maxBits {
		maxBits = cfg.MaxBits
	}
	if nbits > maxBits {
		nbits = maxBits
		nbits -= nbits % blockBits
	}
	if nbits < blockBits {
		nbits = blockBits
	}

	c = float64(nbits) / n
	nhashes = int(math.Round(c * ln2))
	if nhashes < 1 {
		nhashes = 1
	}

	return nbits, nhashes
}

// NewOptimized is shorthand for NewBuilder[B]().Bits(n).Hashes(k).Build(),
// with n and k computed by Optimize(cfg).
func NewOptimized[B block](cfg Config) *Filter[B] {
	nbits, nhashes := Optimize[B](cfg)
	return NewBuilder[B]().Bits(nbits).Hashes(nhashes).Build()
}

// FPRate estimates the false-positive rate of a filter with the given
// number of bits and target hashes, for blockBits-bit blocks, after nkeys
// distinct keys have been inserted. It implements Putze et al.'s
// Equation (3): a Poisson-weighted sum, over possible block loads, of the
// false-positive rate of a single block holding that many keys.
func FPRate(blockBits, nkeys, nbits, nhashes int) float64 {
	c := float64(nbits) / float64(nkeys)
	k := float64(nhashes)
	bb := float64(blockBits)

	var sum float64
	for i := 0.0; ; i++ {
		prev := sum
		// bb/i is +Inf at i == 0, which makes logFPRBlock evaluate to
		// -Inf and its Exp to 0: the zero-keys-in-this-block term
		// contributes nothing, as it should.
		sum += math.Exp(logPoisson(bb/c, i) + logFPRBlock(bb/i, k))
		if prev > 0 && sum/prev-1 < 1e-8 {
			break
		}
		if i > 10000 {
			break
		}
	}
	return sum
}

func logFPRBlock(c, k float64) float64 {
	return k * math.Log1p(-math.Exp(-k/c))
}

func logPoisson(lambda, k float64) float64 {
	lg, _ := math.Lgamma(k + 1)
	return k*math.Log(lambda) - lambda - lg
}
