// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cheggaaa/pb"
	"github.com/google/npm-name-explorer/pkg/act"
	"github.com/google/npm-name-explorer/pkg/act/cli"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/google/npm-name-explorer/tools/ctl/command/check"
	"github.com/google/npm-name-explorer/tools/ctl/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the batch command.
type Config struct {
	check.Config
	File     string
	Progress bool
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.File == "" {
		return errors.New("file is required")
	}
	return c.Config.Validate()
}

// Result is one line of batch output. Exists is nil when the check failed.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Exists *bool  `json:"exists" yaml:"exists"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// readNames returns the non-blank lines of r, skipping "#" comments.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, errors.Wrap(s.Err(), "reading names")
}

// Handler checks every name in the input one after another.
func Handler(ctx context.Context, cfg Config, deps *check.Deps) (*act.NoOutput, error) {
	var in io.Reader = deps.IO.In
	if cfg.File != "-" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return nil, errors.Wrap(err, "opening names file")
		}
		defer f.Close()
		in = f
	}
	names, err := readNames(in)
	if err != nil {
		return nil, err
	}
	c, _, err := check.NewChecker(cfg.Config, deps)
	if err != nil {
		return nil, err
	}
	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.New(len(names))
		bar.Output = deps.IO.Err
		bar.ShowTimeLeft = true
		bar.Start()
	}
	results := make([]Result, 0, len(names))
	var failed int
	for _, name := range names {
		r := Result{Name: name, Kind: npmname.Classify(name).String()}
		exists, err := c.Exists(ctx, name, npmname.Options{RegistryURL: cfg.Registry})
		if err != nil {
			r.Error = strings.ReplaceAll(err.Error(), "\n", "; ")
			failed++
		} else {
			r.Exists = &exists
		}
		results = append(results, r)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	if f := output.Format(cfg.Output); f != output.Text {
		if err := output.Encode(deps.IO.Out, f, results); err != nil {
			return nil, err
		}
	} else if err := printTable(deps.IO.Out, results); err != nil {
		return nil, err
	}
	if failed > 0 {
		return nil, errors.Errorf("%d of %d checks failed", failed, len(names))
	}
	return &act.NoOutput{}, nil
}

func printTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSTATUS")
	for _, r := range results {
		status := r.Error
		if r.Exists != nil && *r.Exists {
			status = "taken"
		} else if r.Exists != nil {
			status = "available"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Kind, status)
	}
	return tw.Flush()
}

// Command creates a new batch command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "batch --file <path|-> [--registry <URL>] [--npmrc <file>] [--progress] [--output text|json|yaml]",
		Short: "Checks a list of names, one per line",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.NoArgs[Config],
			check.InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.File, "file", "", "file of names to check, or - for stdin")
	set.BoolVar(&cfg.Progress, "progress", false, "show a progress bar on stderr")
	set.StringVar(&cfg.Registry, "registry", "", "registry URL overriding the npm configuration")
	set.StringVar(&cfg.NPMRC, "npmrc", "", "extra .npmrc file applied after the project one")
	set.StringVar(&cfg.Remote, "remote", "", "base URL of a name-check service to query instead of the registry")
	set.StringVar(&cfg.UserAgent, "user-agent", "", "User-Agent header for outgoing requests")
	set.DurationVar(&cfg.Timeout, "timeout", npmname.DefaultTimeout, "timeout for each existence probe")
	set.StringVar(&cfg.Output, "output", string(output.Text), "output format: text, json or yaml")
	return set
}

