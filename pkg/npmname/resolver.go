// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package npmname determines whether a name is already taken on the npm
// registry, either as a package, a scoped package or an organization.
package npmname

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/internal/npmrc"
	"github.com/google/npm-name-explorer/internal/urlx"
	"github.com/google/npm-name-explorer/pkg/registry/npm"
	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single existence probe.
const DefaultTimeout = 10 * time.Second

// Config supplies the registry endpoint and its credentials.
type Config interface {
	// RegistryURL returns the default registry base URL.
	RegistryURL() string
	// AuthToken returns the credential for registryURL, or nil.
	AuthToken(registryURL string) *npmrc.Auth
}

var _ Config = &npmrc.Config{}

// Options are per-call settings for Exists.
type Options struct {
	// RegistryURL overrides the configured registry when non-empty.
	RegistryURL string
}

// Resolver checks name existence. The zero value uses http.DefaultClient,
// the public registry without credentials and npm's naming rules.
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver struct {
	Client httpx.BasicClient
	Config Config
	// Validate defaults to the package-level Validate.
	Validate func(string) Validation
	// OrganizationURL defaults to https://www.npmjs.com/org/.
	OrganizationURL *url.URL
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// Exists reports whether name is registered.
//
// Organization references ("@org") are checked against the npm website and
// skip package-name validation. Other names must be valid for new packages
// and are checked against the registry, with credentials if configured.
// A 404 yields false; any other failure yields a *ProbeError.
func (r *Resolver) Exists(ctx context.Context, name string, opts Options) (bool, error) {
	if name == "" {
		return false, ErrMissingName
	}
	if opts.RegistryURL != "" && !urlx.IsAbsolute(opts.RegistryURL) {
		return false, errors.Wrapf(ErrInvalidRegistryURL, "%q", opts.RegistryURL)
	}
	cfg := r.config()
	registry := strings.TrimSpace(opts.RegistryURL)
	if registry == "" {
		registry = cfg.RegistryURL()
	}
	registry = urlx.WithTrailingSlash(registry)

	kind := Classify(name)
	if kind != Organization {
		if v := r.validate(name); !v.ValidForNewPackages {
			return false, &InvalidNameError{Name: name, Warnings: v.Warnings, Errors: v.Errors}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()
	if kind == Organization {
		site := npm.Website{Client: r.client(), URL: r.OrganizationURL}
		return site.OrganizationExists(ctx, OrganizationName(name))
	}
	base, err := url.Parse(registry)
	if err != nil {
		return false, errors.Wrap(err, "parsing registry URL")
	}
	reg := npm.HTTPRegistry{
		Client:        r.client(),
		URL:           base,
		Authorization: cfg.AuthToken(registry).Header(),
	}
	return reg.PackageExists(ctx, URLName(name))
}

func (r *Resolver) config() Config {
	if r.Config == nil {
		return npmrc.Default()
	}
	return r.Config
}

func (r *Resolver) client() httpx.BasicClient {
	if r.Client == nil {
		return http.DefaultClient
	}
	return r.Client
}

func (r *Resolver) validate(name string) Validation {
	if r.Validate == nil {
		return Validate(name)
	}
	return r.Validate(name)
}

func (r *Resolver) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// Exists reports whether name is registered, using the npm configuration of
// the current process and http.DefaultClient.
func Exists(ctx context.Context, name string, opts Options) (bool, error) {
	if name == "" {
		return false, ErrMissingName
	}
	cfg, err := npmrc.Load(npmrc.LoadOptions{})
	if err != nil {
		return false, errors.Wrap(err, "loading npm config")
	}
	r := &Resolver{Config: cfg}
	return r.Exists(ctx, name, opts)
}
