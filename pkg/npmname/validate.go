// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmname

import (
	"regexp"
	"strings"
)

const maxLength = 214

var blacklist = []string{"node_modules", "favicon.ico"}

// scopedNamePattern splits an optional "@user/" prefix from the package part.
var scopedNamePattern = regexp.MustCompile(`^(?:@([^/]+?)/)?([^/]+?)$`)

// Validation is the outcome of checking a name against npm naming rules.
//
// Errors make a name invalid for any package. Warnings describe rules that
// older packages were allowed to break but new packages may not.
type Validation struct {
	ValidForNewPackages bool
	ValidForOldPackages bool
	Warnings            []string
	Errors              []string
}

// Notices returns the warnings followed by the errors.
func (v Validation) Notices() []string {
	notices := make([]string, 0, len(v.Warnings)+len(v.Errors))
	notices = append(notices, v.Warnings...)
	return append(notices, v.Errors...)
}

// Validate checks name against the npm package naming rules.
func Validate(name string) Validation {
	var warnings, errs []string
	if len(name) == 0 {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}
	lower := strings.ToLower(name)
	for _, b := range blacklist {
		if lower == b {
			errs = append(errs, b+" is a blacklisted name")
		}
	}

	if builtins[lower] {
		warnings = append(warnings, name+" is a core module name")
	}
	// Byte length. Names with non-ASCII characters fail the URL-friendly
	// check below whatever their length.
	if len(name) > maxLength {
		warnings = append(warnings, "name can no longer contain more than 214 characters")
	}
	if lower != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}
	last := name[strings.LastIndex(name, "/")+1:]
	if strings.ContainsAny(last, "~'!()*") {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !isURLComponent(name) {
		m := scopedNamePattern.FindStringSubmatch(name)
		if m == nil || m[1] == "" || !isURLComponent(m[1]) || !isURLComponent(m[2]) {
			errs = append(errs, "name can only contain URL-friendly characters")
		}
	}

	return Validation{
		ValidForNewPackages: len(errs) == 0 && len(warnings) == 0,
		ValidForOldPackages: len(errs) == 0,
		Warnings:            warnings,
		Errors:              errs,
	}
}

// isURLComponent reports whether s survives URL component encoding unchanged,
// i.e. it only contains ASCII letters, digits and -_.!~*'().
func isURLComponent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
