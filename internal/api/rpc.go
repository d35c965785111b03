// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package api re-exports the act HTTP plumbing under the names used by the
// service packages.
package api

import (
	"net/http"
	"net/url"

	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/pkg/act"
	actapi "github.com/google/npm-name-explorer/pkg/act/api"
)

type (
	Message      = act.Input
	Dependencies = act.Deps
	NoDeps       = act.NoDeps
	NoReturn     = act.NoOutput

	InitT[D act.Deps]                        = actapi.InitDeps[D]
	HandlerT[I act.Input, O any, D act.Deps] = actapi.HandlerFunc[I, O, D]
	StubT[I act.Input, O any]                = actapi.StubFunc[I, O]
	ParseT[I act.Input]                      = actapi.ParseRequest[I]
	Envelope[T any]                          = actapi.Envelope[T]
	ResponseError                            = actapi.ResponseError
)

var (
	NoDepsInit = act.NoDepsInit

	ErrNotOK = actapi.ErrNotOK

	AsStatus   = actapi.AsStatus
	HTTPStatus = actapi.HTTPStatus
)

// Generic functions re-exports (must be defined as functions, not variables)

func Stub[I act.Input, O any](client httpx.BasicClient, u *url.URL, path func(I) string) StubT[I, O] {
	return actapi.Stub[I, O](client, u, path)
}

func Handler[I act.Input, O any, D act.Deps](initDeps InitT[D], parse ParseT[I], handler HandlerT[I, O, D]) http.HandlerFunc {
	return actapi.Handler(initDeps, parse, handler)
}

func Static[D act.Deps](d D) InitT[D] {
	return InitT[D](act.Static(d))
}
