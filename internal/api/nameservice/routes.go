// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package nameservice

import (
	"net/http"

	"github.com/google/npm-name-explorer/internal/api"
)

// CheckNamePath is the route prefix under which names are resolved.
const CheckNamePath = "/api/check-npm-name/"

// Register mounts the service routes on mux.
func Register(mux *http.ServeMux, initDeps api.InitT[*CheckNameDeps]) {
	mux.Handle("GET "+CheckNamePath+"{name...}", api.Handler(initDeps, ParseCheckNameRequest, CheckName))
	mux.Handle("GET /version", api.Handler(api.NoDepsInit, ParseVersionRequest, Version))
}
