// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmname

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/google/npm-name-explorer/internal/npmrc"
)

// TestLiveRegistry talks to the public npm registry and website.
func TestLiveRegistry(t *testing.T) {
	if os.Getenv("NPMNAME_LIVE_TESTS") != "1" {
		t.Skip("set NPMNAME_LIVE_TESTS=1 to probe registry.npmjs.org")
	}
	r := &Resolver{Config: npmrc.Default()}
	random := fmt.Sprintf("nonexistent-package-%d", rand.Int63())
	for _, tc := range []struct {
		name string
		want bool
	}{
		{"lodash", true},
		{"@babel/core", true},
		{"@vercel", true},
		{random, false},
		{"@nonexistent-scope-" + random[len("nonexistent-package-"):] + "/nonexistent-package", false},
		{"@nonexistent-org-" + random[len("nonexistent-package-"):], false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Exists(context.Background(), tc.name, Options{})
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Exists() = %v, want %v", got, tc.want)
			}
		})
	}
}
