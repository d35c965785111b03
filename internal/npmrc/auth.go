// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package npmrc

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
)

// Auth is a credential configured for a registry.
type Auth struct {
	Type     string
	Token    string
	Username string
	Password string
}

// Header returns the Authorization header value for a, or "" if a is
// missing either its type or token.
func (a *Auth) Header() string {
	if a == nil || a.Type == "" || a.Token == "" {
		return ""
	}
	return a.Type + " " + a.Token
}

// AuthToken returns the credential configured for registryURL, or nil.
//
// Keys are matched from the most specific path of registryURL up to its
// host, e.g. for https://example.com/npm/private/ the prefixes
// //example.com/npm/private, //example.com/npm and //example.com are tried
// in turn. For each prefix a bearer token (:_authToken) wins over a
// username/password pair, which wins over a legacy :_auth token. If no
// prefix matches, a top-level _auth is used.
func (c *Config) AuthToken(registryURL string) *Auth {
	u, err := url.Parse(registryURL)
	if err != nil || u.Host == "" {
		return c.legacyAuth()
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	for {
		if a := c.authFor("//" + u.Host + strings.TrimSuffix(p, "/")); a != nil {
			return a
		}
		if p == "/" {
			break
		}
		p = parentPath(p)
	}
	return c.legacyAuth()
}

// parentPath returns the parent of p with a trailing slash.
func parentPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i+1]
}

func (c *Config) authFor(prefix string) *Auth {
	lookup := func(suffix string) string {
		if v, ok := c.values[prefix+suffix]; ok && v != "" {
			return c.expandToken(v)
		}
		if v, ok := c.values[prefix+"/"+suffix]; ok && v != "" {
			return c.expandToken(v)
		}
		return ""
	}
	if tok := lookup(":_authToken"); tok != "" {
		return &Auth{Type: "Bearer", Token: tok}
	}
	if username, password := lookup(":username"), lookup(":_password"); username != "" && password != "" {
		decoded, ok := decodeBase64(password)
		if ok {
			return &Auth{
				Type:     "Basic",
				Token:    base64.StdEncoding.EncodeToString([]byte(username + ":" + decoded)),
				Username: username,
				Password: decoded,
			}
		}
	}
	if tok := lookup(":_auth"); tok != "" {
		return &Auth{Type: "Basic", Token: tok}
	}
	return nil
}

func (c *Config) legacyAuth() *Auth {
	v, ok := c.values["_auth"]
	if !ok || v == "" {
		return nil
	}
	return &Auth{Type: "Basic", Token: c.expandToken(v)}
}

var tokenRef = regexp.MustCompile(`^\$\{?([^}]*)\}?$`)

// expandToken resolves a value that is entirely an environment reference,
// either $VAR or ${VAR}. Unset variables resolve to "".
func (c *Config) expandToken(v string) string {
	m := tokenRef.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	return c.env[m[1]]
}

func decodeBase64(s string) (string, bool) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		if b, err := enc.DecodeString(s); err == nil {
			return string(b), true
		}
	}
	return "", false
}
