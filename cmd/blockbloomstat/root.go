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
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmarro89/blockbloom"
)

var (
	cfgFile    string
	blockBits  int
	fpRate     float64
	hasherName string
)

// Execute builds and runs the blockbloomstat command tree.
func Execute() error {
	root := newRootCmd()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blockbloomstat",
		Short: "Build a blocked Bloom filter from a word list and report its stats",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./blockbloomstat.yaml)")
	root.PersistentFlags().IntVar(&blockBits, "block-bits", blockbloom.RecommendedBlockBits(),
		"block size in bits: 64, 128, 256 or 512 (default: cache-line size of this machine)")
	root.PersistentFlags().Float64Var(&fpRate, "fp-rate", 0.01, "target false positive rate")
	root.PersistentFlags().StringVar(&hasherName, "hasher", "xxhash", "hasher: xxhash, xxh3 or blake2b")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	return root
}

func loadConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("blockbloomstat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("BLOCKBLOOMSTAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("blockbloomstat: no config file found, using flags/defaults")
	}

	if viper.IsSet("block-bits") {
		blockBits = viper.GetInt("block-bits")
	}
	if viper.IsSet("fp-rate") {
		fpRate = viper.GetFloat64("fp-rate")
	}
	if viper.IsSet("hasher") {
		hasherName = viper.GetString("hasher")
	}
	return nil
}
