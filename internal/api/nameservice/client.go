// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package nameservice

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/npm-name-explorer/internal/api"
	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/pkg/errors"
)

// Client calls a remote name-check service.
type Client struct {
	stub api.StubT[CheckNameRequest, CheckNameResponse]
}

// NewClient returns a Client for the service rooted at base.
func NewClient(client httpx.BasicClient, base *url.URL) *Client {
	prefix := base.JoinPath(strings.Trim(CheckNamePath, "/"))
	return &Client{stub: api.Stub[CheckNameRequest, CheckNameResponse](client, prefix, pathFor)}
}

func pathFor(req CheckNameRequest) string { return req.Name }

// Exists reports whether the service found name on the registry.
func (c *Client) Exists(ctx context.Context, name string, opts npmname.Options) (bool, error) {
	if name == "" {
		return false, npmname.ErrMissingName
	}
	if opts.RegistryURL != "" {
		return false, errors.New("registry override is not supported by the remote client")
	}
	resp, err := c.stub(ctx, CheckNameRequest{Name: name})
	if err != nil {
		return false, err
	}
	return resp.PackageExists, nil
}

var _ Checker = &Client{}
