// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"

	"github.com/google/npm-name-explorer/tools/ctl/command/batch"
	"github.com/google/npm-name-explorer/tools/ctl/command/check"
	"github.com/google/npm-name-explorer/tools/ctl/command/validate"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "ctl",
	Short:        "A command-line tool for exploring npm package, scope and organization names",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(check.Command())
	rootCmd.AddCommand(batch.Command())
	rootCmd.AddCommand(validate.Command())
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
