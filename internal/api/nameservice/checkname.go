// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package nameservice implements the HTTP name-check service.
package nameservice

import (
	"context"
	"os"

	"github.com/google/npm-name-explorer/internal/api"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

// Checker is satisfied by *npmname.Resolver.
type Checker interface {
	Exists(ctx context.Context, name string, opts npmname.Options) (bool, error)
}

var _ Checker = &npmname.Resolver{}

type CheckNameDeps struct {
	Checker Checker
}

func CheckName(ctx context.Context, req CheckNameRequest, deps *CheckNameDeps) (*CheckNameResponse, error) {
	exists, err := deps.Checker.Exists(ctx, req.Name, npmname.Options{})
	if err != nil {
		return nil, asStatus(err)
	}
	return &CheckNameResponse{PackageExists: exists}, nil
}

func asStatus(err error) error {
	var ine *npmname.InvalidNameError
	var pe *npmname.ProbeError
	switch {
	case errors.Is(err, npmname.ErrMissingName), errors.Is(err, npmname.ErrInvalidRegistryURL), errors.As(err, &ine):
		return api.AsStatus(codes.InvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return api.AsStatus(codes.Canceled, err)
	case errors.As(err, &pe):
		return api.AsStatus(codes.Unavailable, err)
	default:
		return api.AsStatus(codes.Internal, err)
	}
}

func Version(ctx context.Context, req VersionRequest, _ *api.NoDeps) (*VersionResponse, error) {
	return &VersionResponse{Version: os.Getenv("K_REVISION")}, nil
}
