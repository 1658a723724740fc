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
	"encoding/binary"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// mixConstant is used to derive h2 from the upper half of h1. It is
// approximately 2^64/π, chosen so that
// entropy from h1's high bits is spread across both halves of h2 instead
// of letting low-entropy high bits of a weak hash dominate later mod
// reductions.
const mixConstant = 0x517C_C1B7_2722_0A95

// Hasher is a stateful hash accumulator: write bytes into it, then read
// back a 64-bit digest. It is the minimal subset of hash.Hash64 that
// seedPair needs, expressed as its own interface so that non-hash.Hash64
// hashers (like Blake2bHasher, which truncates a wider digest) can
// implement it too.
type Hasher interface {
	Write(p []byte)
	Sum64() uint64
}

// HasherFactory produces a fresh Hasher. Builder and Filter each hold one;
// a fresh Hasher per call keeps Insert/Contains free of shared state.
type HasherFactory func() Hasher

// DefaultHasher is the default HasherFactory, backed by xxhash (64-bit
// XXH64). It is a solid, fast, non-cryptographic general-purpose hash —
// the same role cespare/xxhash plays across the wider Go ecosystem's
// caches and indexes.
func DefaultHasher() Hasher {
	return &xxhashHasher{d: xxhash.New()}
}

type xxhashHasher struct {
	d *xxhash.Digest
}

func (h *xxhashHasher) Write(p []byte) { h.d.Write(p) }
func (h *xxhashHasher) Sum64() uint64  { return h.d.Sum64() }

// XXH3Hasher is a HasherFactory backed by XXH3 (zeebo/xxh3), which
// outperforms XXH64 on longer keys thanks to its wider internal
// accumulator. Prefer it over DefaultHasher when keys are not small
// fixed-size values.
func XXH3Hasher() Hasher {
	return &xxh3Hasher{h: xxh3.New()}
}

type xxh3Hasher struct {
	h *xxh3.Hasher
}

func (h *xxh3Hasher) Write(p []byte) { h.h.Write(p) }
func (h *xxh3Hasher) Sum64() uint64  { return h.h.Sum64() }

// Blake2bHasher is a HasherFactory backed by BLAKE2b, truncated to its
// first 64 bits. Use it when keys come from an untrusted source and a
// collision-resistant hash is worth the extra cost over xxhash/XXH3.
func Blake2bHasher() Hasher {
	d, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for a bad MAC key, and we pass nil.
		panic("blockbloom: blake2b.New256: " + err.Error())
	}
	return &blake2bHasher{d: d}
}

type blake2bHasher struct {
	d interface {
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
	}
}

func (h *blake2bHasher) Write(p []byte) { h.d.Write(p) }

func (h *blake2bHasher) Sum64() uint64 {
	sum := h.d.Sum(nil)
	return uint64(sum[0]) | uint64(sum[1])<<8 | uint64(sum[2])<<16 | uint64(sum[3])<<24 |
		uint64(sum[4])<<32 | uint64(sum[5])<<40 | uint64(sum[6])<<48 | uint64(sum[7])<<56
}

// seedPair hashes seed followed by key with a fresh hasher from factory,
// then derives a second 64-bit seed from the first. One real hash call is
// amortized across every derived position an insert/contains call needs.
//
// Folding seed in here, ahead of the key bytes, is what gives Builder.Seed
// something to drive regardless of which HasherFactory is in play: two
// filters built with the same factory but different seeds hash every key
// to an unrelated (h1, h2) pair, per the "identical hasher configuration
// (seeds)" equality requirement.
func seedPair(factory HasherFactory, seed uint64, key []byte) (h1, h2 uint64) {
	h := factory()
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)
	h.Write(seedBytes[:])
	h.Write(key)
	h1 = h.Sum64()
	h2 = (h1 >> 32) * mixConstant
	return h1, h2
}

// nextHash advances the (h1, h2) stream and returns the new h1. It is a
// cheap linear-congruential-style stepper, deliberately not
// cryptographic: the uniformity properties tested in hash_test.go are
// tuned to this exact stepper, and a "stronger" mixer would invalidate
// them without improving the filter's false-positive behavior.
func nextHash(h1 *uint64, h2 uint64) uint64 {
	*h1 = bits.RotateLeft64(*h1+h2, 5)
	return *h1
}

// blockIndex maps h1 to a block in [0, numBlocks) using Lemire's fast
// range reduction (multiply-high), equivalent to h1 mod numBlocks for
// h1 uniform on 2^64 but far cheaper than a division.
func blockIndex(numBlocks int, h1 uint64) int {
	return int(((h1 >> 32) * uint64(numBlocks)) >> 32)
}
