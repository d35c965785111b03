// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package api exposes act actions over HTTP using JSON envelopes.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/pkg/act"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type InitDeps[D act.Deps] func(context.Context) (D, error)
type HandlerFunc[I act.Input, O any, D act.Deps] func(context.Context, I, D) (*O, error)
type StubFunc[I act.Input, O any] func(context.Context, I) (*O, error)

// ParseRequest populates an Input from an incoming request, typically from
// its path values.
type ParseRequest[I act.Input] func(*http.Request) (I, error)

// Type aliases for convenience
type NoDeps = act.NoDeps

var NoDepsInit = act.NoDepsInit

var ErrNotOK = errors.New("non-OK response")

// Stub returns a client for a Handler mounted under u. path maps the input
// to the (unescaped) path appended to u.
func Stub[I act.Input, O any](client httpx.BasicClient, u *url.URL, path func(I) string) StubFunc[I, O] {
	return func(ctx context.Context, i I) (*O, error) {
		if err := i.Validate(); err != nil {
			return nil, errors.Wrap(err, "validating request")
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.JoinPath(path(i)).String(), nil)
		if err != nil {
			return nil, errors.Wrap(err, "building http request")
		}
		req.Header.Set("Accept", "application/json")
		resp, err := client.Do(req)
		if err != nil {
			return nil, errors.Wrap(err, "making http request")
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "reading response")
		}
		var env Envelope[O]
		if err := json.Unmarshal(b, &env); err != nil {
			if resp.StatusCode != http.StatusOK {
				return nil, errors.Wrap(errors.Wrap(ErrNotOK, resp.Status), string(b))
			}
			return nil, errors.Wrap(err, "decoding response")
		}
		if env.Type != TypeSuccess || env.Code != http.StatusOK {
			code := env.Code
			if code == 0 {
				code = resp.StatusCode
			}
			return nil, &ResponseError{Code: code, Message: env.Message}
		}
		if env.Data == nil {
			return nil, errors.New("response missing data")
		}
		return env.Data, nil
	}
}

// AsStatus creates a gRPC status with the given code and error message.
func AsStatus(code codes.Code, err error) error {
	return status.New(code, err.Error()).Err()
}

var grpcToHTTP = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           499, // Client Closed Request
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}

// HTTPStatus returns the HTTP status corresponding to err.
func HTTPStatus(err error) int {
	s := status.Convert(err)
	httpStatus, ok := grpcToHTTP[s.Code()]
	if !ok {
		log.Printf("unknown error code: %s\n", s.Code())
		httpStatus = http.StatusInternalServerError
	}
	return httpStatus
}

func Handler[I act.Input, O any, D act.Deps](initDeps InitDeps[D], parse ParseRequest[I], handler HandlerFunc[I, O, D]) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req, err := parse(r)
		if err != nil {
			log.Println(errors.Wrap(err, "parsing request"))
			writeError[O](rw, AsStatus(codes.InvalidArgument, err))
			return
		}
		log.Printf("received request: %+v", req)
		if err := req.Validate(); err != nil {
			log.Println(errors.Wrap(err, "validating request"))
			writeError[O](rw, AsStatus(codes.InvalidArgument, err))
			return
		}
		deps, err := initDeps(ctx)
		if err != nil {
			log.Println(errors.Wrap(err, "initializing dependencies"))
			writeError[O](rw, AsStatus(codes.Internal, errors.New(http.StatusText(http.StatusInternalServerError))))
			return
		}
		o, err := handler(ctx, req, deps)
		if err != nil {
			log.Println(err)
			writeError[O](rw, err)
			return
		}
		writeJSON(rw, http.StatusOK, Success(o))
	}
}

func writeError[O any](rw http.ResponseWriter, err error) {
	code := HTTPStatus(err)
	// NOTE: Use s.Message() instead of err.Error() so that an err which is
	// already a grpc status does not carry the verbose grpc prefix.
	writeJSON(rw, code, Failure[O](code, status.Convert(err).Message()))
}

func writeJSON(rw http.ResponseWriter, code int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		log.Println(errors.Wrap(err, "encoding response"))
	}
}
