// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"context"
	"flag"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/npm-name-explorer/pkg/act"
	"github.com/google/npm-name-explorer/pkg/act/cli"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/google/npm-name-explorer/tools/ctl/output"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the validate command.
type Config struct {
	Name   string
	Output string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	return output.Format(c.Output).Validate()
}

// Deps holds dependencies for the command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Report is the structured output of a validation.
type Report struct {
	Name                string   `json:"name" yaml:"name"`
	Kind                string   `json:"kind" yaml:"kind"`
	ValidForNewPackages bool     `json:"validForNewPackages" yaml:"validForNewPackages"`
	ValidForOldPackages bool     `json:"validForOldPackages" yaml:"validForOldPackages"`
	Warnings            []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors              []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Handler validates a name against npm's naming rules without any network
// access. Organization references are reported as valid since they are not
// package names. A name unfit for new packages yields an *InvalidNameError.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	kind := npmname.Classify(cfg.Name)
	r := Report{Name: cfg.Name, Kind: kind.String(), ValidForNewPackages: true, ValidForOldPackages: true}
	if kind != npmname.Organization {
		v := npmname.Validate(cfg.Name)
		r.ValidForNewPackages, r.ValidForOldPackages = v.ValidForNewPackages, v.ValidForOldPackages
		r.Warnings, r.Errors = v.Warnings, v.Errors
	}
	if f := output.Format(cfg.Output); f != output.Text {
		if err := output.Encode(deps.IO.Out, f, r); err != nil {
			return nil, err
		}
	} else {
		printText(deps, r)
	}
	if !r.ValidForNewPackages {
		return nil, &npmname.InvalidNameError{Name: r.Name, Warnings: r.Warnings, Errors: r.Errors}
	}
	return &act.NoOutput{}, nil
}

func printText(deps *Deps, r Report) {
	if r.ValidForNewPackages {
		fmt.Fprintf(deps.IO.Out, "%s %s is a valid %s name\n", color.GreenString("✓"), r.Name, r.Kind)
		return
	}
	fmt.Fprintf(deps.IO.Out, "%s %s is not valid for new packages\n", color.RedString("✗"), r.Name)
	for _, w := range r.Warnings {
		fmt.Fprintf(deps.IO.Out, "  %s %s\n", color.YellowString("warning:"), w)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(deps.IO.Out, "  %s %s\n", color.RedString("error:"), e)
	}
}

// Command creates a new validate command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "validate <name> [--output text|json|yaml]",
		Short: "Checks a name against npm's package naming rules",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			cli.SingleArg(func(c *Config, name string) { c.Name = name }),
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Output, "output", string(output.Text), "output format: text, json or yaml")
	return set
}
