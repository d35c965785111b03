// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fatih/color"
	"github.com/google/npm-name-explorer/internal/api/nameservice"
	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/internal/npmrc"
	"github.com/google/npm-name-explorer/internal/urlx"
	"github.com/google/npm-name-explorer/pkg/act"
	"github.com/google/npm-name-explorer/pkg/act/cli"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/google/npm-name-explorer/tools/ctl/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the check command.
type Config struct {
	Name      string
	Registry  string
	NPMRC     string
	Remote    string
	UserAgent string
	Timeout   time.Duration
	Output    string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if err := output.Format(c.Output).Validate(); err != nil {
		return err
	}
	if c.Remote != "" {
		if !urlx.IsAbsolute(c.Remote) {
			return errors.Errorf("remote must be an absolute URL: %q", c.Remote)
		}
		if c.Registry != "" || c.NPMRC != "" {
			return errors.New("registry and npmrc cannot be combined with remote")
		}
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Deps holds dependencies for the command.
type Deps struct {
	IO         cli.IO
	HTTPClient httpx.BasicClient
	// LoadConfig reads npm configuration with the given extra files.
	LoadConfig func(files []string) (npmname.Config, error)
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{
		HTTPClient: http.DefaultClient,
		LoadConfig: func(files []string) (npmname.Config, error) {
			return npmrc.Load(npmrc.LoadOptions{Files: files})
		},
	}, nil
}

// Result is the structured output of a check.
type Result struct {
	Name     string `json:"name" yaml:"name"`
	Kind     string `json:"kind" yaml:"kind"`
	Exists   bool   `json:"exists" yaml:"exists"`
	Registry string `json:"registry,omitempty" yaml:"registry,omitempty"`
}

// NewChecker returns the checker selected by cfg and the registry it probes
// ("" when delegating to a remote service).
func NewChecker(cfg Config, deps *Deps) (nameservice.Checker, string, error) {
	client := &httpx.WithUserAgent{BasicClient: deps.HTTPClient, UserAgent: cfg.UserAgent}
	if cfg.Remote != "" {
		u, err := url.Parse(cfg.Remote)
		if err != nil {
			return nil, "", errors.Wrap(err, "parsing remote")
		}
		return nameservice.NewClient(client, u), "", nil
	}
	var files []string
	if cfg.NPMRC != "" {
		files = append(files, cfg.NPMRC)
	}
	npmcfg, err := deps.LoadConfig(files)
	if err != nil {
		return nil, "", errors.Wrap(err, "loading npm config")
	}
	registry := npmcfg.RegistryURL()
	if cfg.Registry != "" {
		registry = urlx.WithTrailingSlash(cfg.Registry)
	}
	return &npmname.Resolver{Client: client, Config: npmcfg, Timeout: cfg.Timeout}, registry, nil
}

// Handler checks a single name and reports whether it is taken.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	c, registry, err := NewChecker(cfg, deps)
	if err != nil {
		return nil, err
	}
	exists, err := c.Exists(ctx, cfg.Name, npmname.Options{RegistryURL: cfg.Registry})
	if err != nil {
		var ine *npmname.InvalidNameError
		if errors.As(err, &ine) && output.Format(cfg.Output) == output.Text {
			red := color.New(color.FgRed)
			red.Fprintf(deps.IO.Err, "Invalid package name: %s\n", ine.Name)
			for _, n := range append(append([]string{}, ine.Warnings...), ine.Errors...) {
				red.Fprintf(deps.IO.Err, "- %s\n", n)
			}
		}
		return nil, err
	}
	kind := npmname.Classify(cfg.Name)
	if kind == npmname.Organization {
		registry = ""
	}
	res := Result{Name: cfg.Name, Kind: kind.String(), Exists: exists, Registry: registry}
	if f := output.Format(cfg.Output); f != output.Text {
		return &act.NoOutput{}, output.Encode(deps.IO.Out, f, res)
	}
	if exists {
		fmt.Fprintf(deps.IO.Out, "%s %s is taken\n", color.YellowString("✗"), res.Name)
	} else {
		fmt.Fprintf(deps.IO.Out, "%s %s is available\n", color.GreenString("✓"), res.Name)
	}
	return &act.NoOutput{}, nil
}

// Command creates a new check command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "check <name> [--registry <URL>] [--npmrc <file>] [--remote <URL>] [--output text|json|yaml]",
		Short: "Checks whether a package, scope or organization name is taken on npm",
		Long: `Checks whether a name is already registered on npm.

Plain and scoped package names (lodash, @babel/core) are validated and probed
on the configured registry using credentials from the npm configuration.
Organization names (@vercel) are probed on the npm website.

With --remote, the check is delegated to a running name-check service.`,
		Args: cobra.ExactArgs(1),
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
	set.StringVar(&cfg.Registry, "registry", "", "registry URL overriding the npm configuration")
	set.StringVar(&cfg.NPMRC, "npmrc", "", "extra .npmrc file applied after the project one")
	set.StringVar(&cfg.Remote, "remote", "", "base URL of a name-check service to query instead of the registry")
	set.StringVar(&cfg.UserAgent, "user-agent", "", "User-Agent header for outgoing requests")
	set.DurationVar(&cfg.Timeout, "timeout", npmname.DefaultTimeout, "timeout for the existence probe")
	set.StringVar(&cfg.Output, "output", string(output.Text), "output format: text, json or yaml")
	return set
}
