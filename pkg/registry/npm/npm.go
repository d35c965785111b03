// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package npm probes the npm registry and website for the existence of
// packages and organizations.
package npm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/internal/urlx"
)

var (
	registryURL     = urlx.MustParse("https://registry.npmjs.org/")
	organizationURL = urlx.MustParse("https://www.npmjs.com/org/")
)

// Registry answers whether a package name is taken.
type Registry interface {
	PackageExists(context.Context, string) (bool, error)
}

// Organizations answers whether an organization name is taken.
type Organizations interface {
	OrganizationExists(context.Context, string) (bool, error)
}

// HTTPRegistry is a Registry implementation that uses the npm registry HTTP API.
type HTTPRegistry struct {
	Client httpx.BasicClient
	// URL is the registry base. Defaults to https://registry.npmjs.org/.
	URL *url.URL
	// Authorization, if set, is sent as the Authorization header.
	Authorization string
}

// PackageExists issues a HEAD request for the package document of name.
// name must already be URL-safe (scoped names use "%2f" as the separator).
func (r HTTPRegistry) PackageExists(ctx context.Context, name string) (bool, error) {
	base := r.URL
	if base == nil {
		base = registryURL
	}
	return probe(ctx, r.Client, urlx.WithTrailingSlash(base.String())+strings.ToLower(name), r.Authorization)
}

var _ Registry = &HTTPRegistry{}

// Website is an Organizations implementation that uses the public npm
// website's organization pages. Registry credentials are never sent to it.
type Website struct {
	Client httpx.BasicClient
	// URL is the organization page prefix. Defaults to https://www.npmjs.com/org/.
	URL *url.URL
}

// OrganizationExists issues a HEAD request for the organization page of org.
func (w Website) OrganizationExists(ctx context.Context, org string) (bool, error) {
	base := w.URL
	if base == nil {
		base = organizationURL
	}
	return probe(ctx, w.Client, urlx.WithTrailingSlash(base.String())+strings.ToLower(org), "")
}

var _ Organizations = &Website{}

// ProbeError is returned when an existence probe neither confirms nor
// denies existence.
type ProbeError struct {
	URL string
	// StatusCode is zero when no response was received.
	StatusCode int
	Status     string
	Err        error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probing %s: %v", e.URL, e.Err)
	}
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("probing %s: npm registry error: %s", e.URL, status)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// probe maps 2xx to true and 404 to false. Everything else is a ProbeError.
func probe(ctx context.Context, client httpx.BasicClient, u, authorization string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return false, &ProbeError{URL: u, Err: err}
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, &ProbeError{URL: u, Err: err}
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, &ProbeError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}
}
