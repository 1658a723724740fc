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

// Package blockbloom implements blocked Bloom filters.
//
// A blocked Bloom filter is an approximate set: if a key has been
// inserted, Contains returns true, but Contains may also return true for
// keys that were never inserted (a false positive). False negatives are
// impossible.
//
// Unlike a textbook Bloom filter, every bit touched by a single Insert or
// Contains call lives in one fixed-size block (64, 128, 256 or 512 bits,
// chosen via the Block64/Block128/Block256/Block512 type parameter). That
// keeps each operation to a single cache line's worth of memory traffic.
//
// Within a block, bits are set two ways: a handful of "sparse" hashes that
// land anywhere in the block, and "signature rounds" that set exactly one
// bit per 64-bit word, amortizing hash derivation across the whole block.
// Builder chooses the split between the two automatically from the
// expected number of keys, or it can be overridden with an explicit hash
// count.
//
//	f := blockbloom.NewBuilder[blockbloom.Block512]().
//		Bits(1 << 20).
//		ExpectedItems(100_000).
//		Build()
//	f.Insert([]byte("42"))
//	f.Contains([]byte("42")) // true
//
// Keys are hashed through the Hasher/HasherFactory collaborator interface;
// DefaultHasher (xxhash), XXH3Hasher and Blake2bHasher are provided, and
// any type satisfying Hasher works.
package blockbloom
