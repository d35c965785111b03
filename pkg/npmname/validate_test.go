// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmname

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestValidate(t *testing.T) {
	special := `name can no longer contain special characters ("~'!()*")`
	urlFriendly := "name can only contain URL-friendly characters"
	for _, tc := range []struct {
		name string
		want Validation
	}{
		{"some-package", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"example.com", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"under_score", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"period.js", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"123numeric", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"@npm/thingy", Validation{ValidForNewPackages: true, ValidForOldPackages: true}},
		{"crazy!", Validation{ValidForOldPackages: true, Warnings: []string{special}}},
		{"@npm-zors/money!time.js", Validation{ValidForOldPackages: true, Warnings: []string{special}}},
		{"", Validation{Errors: []string{"name length must be greater than zero"}}},
		{".start-with-period", Validation{Errors: []string{"name cannot start with a period"}}},
		{"_start-with-underscore", Validation{Errors: []string{"name cannot start with an underscore"}}},
		{"contain:colons", Validation{Errors: []string{urlFriendly}}},
		{" leading-space", Validation{Errors: []string{"name cannot contain leading or trailing spaces", urlFriendly}}},
		{"trailing-space ", Validation{Errors: []string{"name cannot contain leading or trailing spaces", urlFriendly}}},
		{"s/l/a/s/h/e/s", Validation{Errors: []string{urlFriendly}}},
		{"@/pkg", Validation{Errors: []string{urlFriendly}}},
		{"node_modules", Validation{Errors: []string{"node_modules is a blacklisted name"}}},
		{"favicon.ico", Validation{Errors: []string{"favicon.ico is a blacklisted name"}}},
		{"http", Validation{ValidForOldPackages: true, Warnings: []string{"http is a core module name"}}},
		{"fs/promises", Validation{Warnings: []string{"fs/promises is a core module name"}, Errors: []string{urlFriendly}}},
		{"CAPITAL-LETTERS", Validation{ValidForOldPackages: true, Warnings: []string{"name can no longer contain capital letters"}}},
		{strings.Repeat("a", 215), Validation{ValidForOldPackages: true, Warnings: []string{"name can no longer contain more than 214 characters"}}},
		{"Caps With Spaces!", Validation{
			Warnings: []string{"name can no longer contain capital letters", special},
			Errors:   []string{urlFriendly},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.name)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Validate(%q) mismatch (-want +got):\n%s", tc.name, diff)
			}
		})
	}
}

func TestValidationNotices(t *testing.T) {
	v := Validation{Warnings: []string{"w1", "w2"}, Errors: []string{"e1"}}
	if diff := cmp.Diff([]string{"w1", "w2", "e1"}, v.Notices()); diff != "" {
		t.Errorf("Notices() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNonASCIIRejected(t *testing.T) {
	urlFriendly := "name can only contain URL-friendly characters"
	for _, name := range []string{"café", strings.Repeat("é", 120)} {
		v := Validate(name)
		if v.ValidForNewPackages || v.ValidForOldPackages {
			t.Errorf("Validate(%q) valid = %v/%v, want invalid", name, v.ValidForNewPackages, v.ValidForOldPackages)
		}
		if !slices.Contains(v.Errors, urlFriendly) {
			t.Errorf("Validate(%q).Errors = %q, want %q", name, v.Errors, urlFriendly)
		}
	}
}
