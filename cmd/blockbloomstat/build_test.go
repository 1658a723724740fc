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

package main

import "testing"

func TestRunBuildReportsWithinEstimate(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	report, err := RunBuild(words, BuildConfig{
		BlockBits: 512,
		FPRate:    0.05,
		Hasher:    "xxhash",
	})
	if err != nil {
		t.Fatal(err)
	}

	if report.Words != len(words) {
		t.Errorf("Words = %d, want %d", report.Words, len(words))
	}
	if report.NumBits <= 0 {
		t.Errorf("NumBits = %d, want > 0", report.NumBits)
	}
	if report.NumHashes < 1 {
		t.Errorf("NumHashes = %d, want >= 1", report.NumHashes)
	}
	// The calculator's estimate can be optimistic for tiny key sets, but
	// it should stay within an order of magnitude of the target.
	if report.MeasuredFPR > report.TargetFPRate*10 {
		t.Errorf("MeasuredFPR = %v, want <= 10x target %v", report.MeasuredFPR, report.TargetFPRate)
	}
}

func TestRunCheckFindsInsertedWords(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie"}

	queries := []string{"alpha", "charlie"}

	results, err := RunCheck(words, queries, BuildConfig{
		BlockBits: 256,
		FPRate:    0.01,
		Hasher:    "xxh3",
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if !r {
			t.Errorf("query %d (%q) not found, want found", i, queries[i])
		}
	}
}

func TestUnknownHasherRejected(t *testing.T) {
	_, err := RunBuild([]string{"a"}, BuildConfig{BlockBits: 512, FPRate: 0.01, Hasher: "nonsense"})
	if err == nil {
		t.Fatal("expected error for unknown hasher")
	}
}
