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

// Block64 is a 64-bit block: one 64-bit word.
type Block64 [1]uint64

// Block128 is a 128-bit block: two 64-bit words.
type Block128 [2]uint64

// Block256 is a 256-bit block: four 64-bit words.
type Block256 [4]uint64

// Block512 is a 512-bit block: eight 64-bit words, matching the L1 cache
// line size of most amd64/arm64 CPUs.
type Block512 [8]uint64

// block is the type constraint satisfied by the four supported block
// sizes. A Filter is specialized over one of these at compile time, the
// idiomatic-Go analogue of a non-type generic over the block size in bits.
type block interface {
	Block64 | Block128 | Block256 | Block512
}

// wordSize is the width in bits of one word of a block's backing array.
const wordSize = 64
