// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package output renders command results in the formats ctl supports.
package output

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// Format selects how a command prints its result.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

func (f Format) Validate() error {
	switch f {
	case Text, JSON, YAML:
		return nil
	default:
		return errors.Errorf("unknown output format %q (want text, json or yaml)", string(f))
	}
}

// Encode writes v to w as JSON or YAML. Text output is left to the caller.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json")
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	default:
		return errors.Errorf("format %q is not structured", string(f))
	}
}
