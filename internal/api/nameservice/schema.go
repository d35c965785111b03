// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package nameservice

import (
	"net/http"
)

// CheckNameRequest asks whether Name is taken on the service's registry.
type CheckNameRequest struct {
	Name string
}

func (CheckNameRequest) Validate() error { return nil }

// ParseCheckNameRequest reads the name from the {name...} path wildcard.
// The registry is fixed by the service configuration and the query string
// is ignored, so callers cannot redirect probes or the credentials sent
// with them.
func ParseCheckNameRequest(r *http.Request) (CheckNameRequest, error) {
	return CheckNameRequest{Name: r.PathValue("name")}, nil
}

type CheckNameResponse struct {
	PackageExists bool `json:"packageExists"`
}

type VersionRequest struct{}

func (VersionRequest) Validate() error { return nil }

func ParseVersionRequest(*http.Request) (VersionRequest, error) { return VersionRequest{}, nil }

type VersionResponse struct {
	Version string `json:"version"`
}
