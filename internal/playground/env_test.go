// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEnv(t *testing.T) {
	for _, tc := range []struct {
		name    string
		environ []string
		want    Env
	}{
		{
			name: "defaults",
			want: Env{Port: DefaultPort},
		},
		{
			name:    "port",
			environ: []string{"PLAYGROUND_PORT=3333"},
			want:    Env{Port: 3333},
		},
		{
			name:    "non-numeric port",
			environ: []string{"PLAYGROUND_PORT=abc"},
			want:    Env{Port: DefaultPort},
		},
		{
			name:    "zero port",
			environ: []string{"PLAYGROUND_PORT=0"},
			want:    Env{Port: DefaultPort},
		},
		{
			name:    "proxy with single quotes",
			environ: []string{`PLAYGROUND_PROXY=[['/api','http://localhost:8080/api'],['/upload','https://files.example.com']]`},
			want: Env{Port: DefaultPort, Proxy: []ProxyRule{
				{Prefix: "/api", Target: "http://localhost:8080/api"},
				{Prefix: "/upload", Target: "https://files.example.com"},
			}},
		},
		{
			name:    "proxy with double quotes",
			environ: []string{`PLAYGROUND_PROXY=[["/api","http://localhost:3000"]]`},
			want:    Env{Port: DefaultPort, Proxy: []ProxyRule{{Prefix: "/api", Target: "http://localhost:3000"}}},
		},
		{
			name:    "malformed proxy",
			environ: []string{"PLAYGROUND_PROXY=[[/api"},
			want:    Env{Port: DefaultPort},
		},
		{
			name:    "empty proxy",
			environ: []string{"PLAYGROUND_PROXY="},
			want:    Env{Port: DefaultPort},
		},
		{
			name:    "unrelated variables ignored",
			environ: []string{"PATH=/bin", "NOEQUALS", "PLAYGROUND_PORTX=1"},
			want:    Env{Port: DefaultPort},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseEnv(tc.environ)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseEnv() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
