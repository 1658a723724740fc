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

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarro89/blockbloom"
)

// statFilter is the subset of Filter[B]'s methods this tool needs,
// satisfied structurally by every block-size instantiation so the CLI
// can dispatch on a runtime --block-bits flag instead of a compile-time
// type parameter.
type statFilter interface {
	Insert(key []byte)
	Contains(key []byte) bool
	NumBits() int
	NumHashes() int
	FPRate(nkeys int) float64
}

// BuildConfig configures a filter build independent of any CLI flags, so
// RunBuild can be called directly from tests or other Go code.
type BuildConfig struct {
	BlockBits int
	FPRate    float64
	Hasher    string
}

// Report summarizes a built filter for display.
type Report struct {
	Words        int
	NumBits      int
	NumHashes    int
	TargetFPRate float64
	MeasuredFPR  float64
}

func hasherFactory(name string) (blockbloom.HasherFactory, error) {
	switch name {
	case "xxhash", "":
		return blockbloom.DefaultHasher, nil
	case "xxh3":
		return blockbloom.XXH3Hasher, nil
	case "blake2b":
		return blockbloom.Blake2bHasher, nil
	default:
		return nil, fmt.Errorf("blockbloomstat: unknown hasher %q", name)
	}
}

// RunBuild builds a filter from words per cfg and returns a Report. It is
// the library entry point the build subcommand and tests both call, so
// behavior can be exercised without going through Cobra or the process
// boundary.
func RunBuild(words []string, cfg BuildConfig) (*Report, error) {
	factory, err := hasherFactory(cfg.Hasher)
	if err != nil {
		return nil, err
	}

	byteWords := make([][]byte, len(words))
	for i, w := range words {
		byteWords[i] = []byte(w)
	}

	var f statFilter
	switch cfg.BlockBits {
	case 64:
		f, err = dispatchBuild[blockbloom.Block64](byteWords, cfg, factory)
	case 128:
		f, err = dispatchBuild[blockbloom.Block128](byteWords, cfg, factory)
	case 256:
		f, err = dispatchBuild[blockbloom.Block256](byteWords, cfg, factory)
	case 512, 0:
		f, err = dispatchBuild[blockbloom.Block512](byteWords, cfg, factory)
	default:
		return nil, fmt.Errorf("blockbloomstat: unsupported --block-bits %d (want 64, 128, 256 or 512)", cfg.BlockBits)
	}
	if err != nil {
		return nil, err
	}

	return &Report{
		Words:        len(words),
		NumBits:      f.NumBits(),
		NumHashes:    f.NumHashes(),
		TargetFPRate: cfg.FPRate,
		MeasuredFPR:  f.FPRate(len(words)),
	}, nil
}

func dispatchBuild[B interface {
	blockbloom.Block64 | blockbloom.Block128 | blockbloom.Block256 | blockbloom.Block512
}](words [][]byte, cfg BuildConfig, factory blockbloom.HasherFactory) (statFilter, error) {
	fpRate := cfg.FPRate
	if fpRate <= 0 {
		fpRate = 0.01
	}
	f := blockbloom.NewBuilder[B]().
		Bits(mustOptimizeBits[B](fpRate, len(words))).
		ExpectedItems(len(words)).
		HasherFactory(factory).
		Build()
	f.Extend(words)
	return f, nil
}

func mustOptimizeBits[B interface {
	blockbloom.Block64 | blockbloom.Block128 | blockbloom.Block256 | blockbloom.Block512
}](fpRate float64, nkeys int) int {
	nbits, _ := blockbloom.Optimize[B](blockbloom.Config{FPRate: fpRate, NKeys: nkeys})
	return nbits
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [word-list-file]",
		Short: "Build a filter from a newline-delimited word list and report its stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := readWordList(args[0])
			if err != nil {
				return err
			}

			report, err := RunBuild(words, BuildConfig{
				BlockBits: blockBits,
				FPRate:    fpRate,
				Hasher:    hasherName,
			})
			if err != nil {
				return err
			}

			printReport(cmd, report)
			return nil
		},
	}
}
