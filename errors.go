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

import "errors"

// ErrInvalidSize is returned by the lower-level NewBlockedBitVector and
// FromWords constructors when the requested size is zero or the supplied
// word vector is empty. Builder.Build has no error result: it panics with
// ErrInvalidSize in the same cases. There is no recovery for that call;
// the caller must ask for a non-empty filter.
var ErrInvalidSize = errors.New("blockbloom: invalid size: bits or word vector must be non-empty")
