// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package settings loads the TOML settings file shared by the binaries.
package settings

import (
	"bytes"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/npm-name-explorer/internal/urlx"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const (
	DefaultListen  = ":8080"
	DefaultTimeout = 10 * time.Second
)

// Settings are service options that may come from a file.
//
//	listen = ":8080"
//	registry = "https://registry.npmjs.org/"
//	npmrc = ["/etc/npm/ci.npmrc"]
//	user_agent = "npm-name-explorer"
//	timeout = "10s"
type Settings struct {
	Listen    string   `toml:"listen"`
	Registry  string   `toml:"registry"`
	NPMRC     []string `toml:"npmrc"`
	UserAgent string   `toml:"user_agent"`
	Timeout   string   `toml:"timeout"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	return &Settings{Listen: DefaultListen}
}

// Load reads path from fs. Unknown keys are rejected.
func Load(fs billy.Filesystem, path string) (*Settings, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return s, nil
}

// Parse decodes TOML settings over the defaults.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	d := toml.NewDecoder(bytes.NewReader(data))
	d.DisallowUnknownFields()
	if err := d.Decode(s); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.Registry != "" && !urlx.IsAbsolute(s.Registry) {
		return errors.Errorf("registry must be an absolute URL: %q", s.Registry)
	}
	if _, err := s.ProbeTimeout(); err != nil {
		return err
	}
	return nil
}

// ProbeTimeout returns the configured timeout, or DefaultTimeout.
func (s *Settings) ProbeTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, errors.Wrap(err, "parsing timeout")
	}
	if d <= 0 {
		return 0, errors.Errorf("timeout must be positive: %s", s.Timeout)
	}
	return d, nil
}

// Encode renders s as TOML.
func (s *Settings) Encode() ([]byte, error) {
	b, err := toml.Marshal(s)
	return b, errors.Wrap(err, "encoding settings")
}
