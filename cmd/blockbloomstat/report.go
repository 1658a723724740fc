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
	"bufio"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func readWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func printReport(cmd *cobra.Command, r *Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "words:      %d\n", r.Words)
	fmt.Fprintf(out, "bits:       %d (%s)\n", r.NumBits, humanize.Bytes(uint64(r.NumBits/8)))
	fmt.Fprintf(out, "hashes:     %d\n", r.NumHashes)
	fmt.Fprintf(out, "target fpr: %.4f\n", r.TargetFPRate)

	label := fmt.Sprintf("%.6f", r.MeasuredFPR)
	if r.MeasuredFPR <= r.TargetFPRate {
		label = color.GreenString(label)
	} else {
		label = color.YellowString(label)
	}
	fmt.Fprintf(out, "measured fpr (estimate): %s\n", label)
}
