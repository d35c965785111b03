// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmname

import (
	"strings"

	"github.com/google/npm-name-explorer/pkg/registry/npm"
	"github.com/pkg/errors"
)

var (
	// ErrMissingName is returned for an empty name.
	ErrMissingName = errors.New("package name required")
	// ErrInvalidRegistryURL is returned when the registry override is not an absolute URL.
	ErrInvalidRegistryURL = errors.New("registry URL option must be a valid URL")
)

// InvalidNameError is returned when a package name breaks npm naming rules.
type InvalidNameError struct {
	Name     string
	Warnings []string
	Errors   []string
}

func (e *InvalidNameError) Error() string {
	var b strings.Builder
	b.WriteString("Invalid package name: ")
	b.WriteString(e.Name)
	for _, n := range append(append([]string{}, e.Warnings...), e.Errors...) {
		b.WriteString("\n- ")
		b.WriteString(n)
	}
	return b.String()
}

// ProbeError is returned when the registry probe fails for any reason other
// than a definitive "not found".
type ProbeError = npm.ProbeError
