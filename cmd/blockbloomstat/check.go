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

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmarro89/blockbloom"
)

// RunCheck builds a filter from words per cfg, then reports whether each
// of queries is (possibly) a member.
func RunCheck(words, queries []string, cfg BuildConfig) ([]bool, error) {
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

	results := make([]bool, len(queries))
	for i, q := range queries {
		results[i] = f.Contains([]byte(q))
	}
	return results, nil
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [word-list-file] [query...]",
		Short: "Build a filter and report whether each query may be a member",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, err := readWordList(args[0])
			if err != nil {
				return err
			}
			queries := args[1:]

			results, err := RunCheck(words, queries, BuildConfig{
				BlockBits: blockBits,
				FPRate:    fpRate,
				Hasher:    hasherName,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, q := range queries {
				status := color.RedString("no")
				if results[i] {
					status = color.GreenString("maybe")
				}
				fmt.Fprintf(out, "%s: %s\n", q, status)
			}
			return nil
		},
	}
}
