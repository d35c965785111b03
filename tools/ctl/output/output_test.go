// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"testing"
)

type sample struct {
	Name   string `json:"name" yaml:"name"`
	Exists bool   `json:"exists" yaml:"exists"`
}

func TestEncode(t *testing.T) {
	v := sample{Name: "@babel/core", Exists: true}
	for _, tc := range []struct {
		format  Format
		want    string
		wantErr bool
	}{
		{format: JSON, want: "{\n  \"name\": \"@babel/core\",\n  \"exists\": true\n}\n"},
		{format: YAML, want: "name: '@babel/core'\nexists: true\n"},
		{format: Text, wantErr: true},
	} {
		t.Run(string(tc.format), func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, tc.format, v)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Encode() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got := buf.String(); got != tc.want {
				t.Errorf("Encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatValidate(t *testing.T) {
	for _, f := range []Format{Text, JSON, YAML} {
		if err := f.Validate(); err != nil {
			t.Errorf("%q.Validate() error = %v", f, err)
		}
	}
	if err := Format("xml").Validate(); err == nil {
		t.Error(`"xml".Validate() error = nil, want error`)
	}
}
