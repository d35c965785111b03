// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package urlx

import (
	"net/url"
	"strings"
)

// MustParse will call url.Parse and panic if there is an error, returning on success.
func MustParse(rawURL string) *url.URL {
	if u, err := url.Parse(rawURL); err != nil {
		panic(err)
	} else {
		return u
	}
}

// IsAbsolute reports whether rawURL parses as an absolute URL with both a
// scheme and a host. Surrounding whitespace is tolerated but inner spaces are not.
func IsAbsolute(rawURL string) bool {
	s := strings.TrimSpace(rawURL)
	if s == "" || strings.Contains(s, " ") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// WithTrailingSlash returns rawURL with exactly one trailing slash.
func WithTrailingSlash(rawURL string) string {
	return strings.TrimSuffix(rawURL, "/") + "/"
}
