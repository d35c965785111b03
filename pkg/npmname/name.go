// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmname

import (
	"regexp"
	"strings"
)

// Kind is the lexical category of a candidate name.
type Kind int

const (
	// Plain is an unscoped package name, e.g. "lodash".
	Plain Kind = iota
	// Scoped is a package inside a scope, e.g. "@babel/core".
	Scoped
	// Organization is a bare organization reference, e.g. "@vercel".
	Organization
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Scoped:
		return "scoped"
	case Organization:
		return "organization"
	default:
		return "unknown"
	}
}

// Organization grammar, matched against the whole name, case-insensitively:
//
//	org  = "@" alnum word+ alnum
//	word = alnum | "_" | "-" | "."
//
// Organization references never contain "/".
var organizationPattern = regexp.MustCompile(`(?i)^@[a-z\d][\w.-]+[a-z\d]$`)

// Scoped package grammar, matched against the whole name, case-insensitively:
//
//	scoped = "@" alnum word+ "/" alnum word*
//	word   = alnum | "_" | "-" | "."
var scopedPattern = regexp.MustCompile(`(?i)^@[a-z\d][\w.-]+/[a-z\d][\w.-]*$`)

// IsOrganization reports whether name is a bare organization reference.
func IsOrganization(name string) bool {
	return organizationPattern.MatchString(name)
}

// IsScoped reports whether name is a scoped package name.
func IsScoped(name string) bool {
	return scopedPattern.MatchString(name)
}

// Classify returns the Kind of name. Organization takes precedence over
// Scoped, and anything matching neither grammar is Plain.
func Classify(name string) Kind {
	switch {
	case IsOrganization(name):
		return Organization
	case IsScoped(name):
		return Scoped
	default:
		return Plain
	}
}

// OrganizationName strips the "@" prefix and any "/" from an organization reference.
func OrganizationName(name string) string {
	return strings.NewReplacer("@", "", "/", "").Replace(name)
}

// URLName returns the form of name used in registry URLs. Scoped names have
// their separator escaped; other names are returned unchanged.
func URLName(name string) string {
	if IsScoped(name) {
		return strings.ReplaceAll(name, "/", "%2f")
	}
	return name
}
