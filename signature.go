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

// signature ORs together rounds values of 1 << (h mod 64), each chosen by
// a fresh hash derived from the (h1, h2) stream. The result may set fewer
// than rounds bits when two derived offsets collide; that is expected and
// is accounted for by the density model in hashesForBits.
func signature(h1 *uint64, h2 uint64, rounds int) uint64 {
	var mask uint64
	for i := 0; i < rounds; i++ {
		h := nextHash(h1, h2)
		mask |= 1 << (h & (wordSize - 1))
	}
	return mask
}

// hashesForBits returns the signature density (bits set per 64-bit word)
// at which a b-bit signature is maximally discriminating between members
// and non-members. This is a tabulated constant from classic
// signature-file analysis, not re-derived here; 0.6931*b (i.e. b*ln 2)
// is the value that makes a single word's expected fill rate ln(2),
// the same optimum that drives a classic Bloom filter's hash count.
//
// The open question of re-deriving this for signature widths other than
// 32 is intentionally left unaddressed; callers needing a different width
// should treat this as a tuned magic number, not a formula to generalize.
func hashesForBits(b int) float64 {
	const ln2 = 0.6931471805599453
	return ln2 * float64(b)
}
