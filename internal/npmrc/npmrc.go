// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package npmrc reads npm client configuration: layered .npmrc files and
// npm_config_* environment variables.
package npmrc

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/npm-name-explorer/internal/urlx"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org/"

const envPrefix = "npm_config_"

// Config is a flattened view over all npm configuration layers.
// Later layers override earlier ones.
type Config struct {
	values map[string]string
	env    map[string]string
}

// LoadOptions controls which configuration sources are consulted by Load.
type LoadOptions struct {
	// WorkDir is where the search for a project .npmrc begins.
	// Defaults to the process working directory.
	WorkDir string
	// HomeDir locates the user .npmrc. Defaults to the user's home directory.
	HomeDir string
	// GlobalFile is the global npmrc. Defaults to /etc/npmrc.
	GlobalFile string
	// Files are additional npmrc files applied after the project file.
	Files []string
	// Environ is the process environment in "KEY=value" form.
	// Defaults to os.Environ().
	Environ []string
}

// New returns a Config holding exactly the given values.
func New(values map[string]string) *Config {
	c := &Config{values: make(map[string]string), env: make(map[string]string)}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

// Default returns a Config that only knows the public registry.
func Default() *Config {
	return New(map[string]string{"registry": DefaultRegistry})
}

// Load reads configuration from the builtin defaults, the global, user and
// project npmrc files, any extra files and finally the environment.
func Load(opts LoadOptions) (*Config, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	c := Default()
	c.env = parseEnviron(environ)
	envValues := configFromEnv(c.env)

	global := opts.GlobalFile
	if v, ok := envValues["globalconfig"]; ok {
		global = v
	} else if global == "" {
		global = filepath.Join(string(filepath.Separator), "etc", "npmrc")
	}
	home := opts.HomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	var user string
	if v, ok := envValues["userconfig"]; ok {
		user = v
	} else if home != "" {
		user = filepath.Join(home, ".npmrc")
	}
	work := opts.WorkDir
	if work == "" {
		var err error
		if work, err = os.Getwd(); err != nil {
			return nil, errors.Wrap(err, "getting working directory")
		}
	}
	files := []string{global, user}
	if project := findProjectFile(work); project != "" && project != user {
		files = append(files, project)
	}
	files = append(files, opts.Files...)
	for _, f := range files {
		if f == "" {
			continue
		}
		values, err := readFile(f)
		if os.IsNotExist(errors.Cause(err)) {
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "reading %s", f)
		}
		c.merge(values)
	}
	c.merge(envValues)
	return c, nil
}

// Parse reads npmrc-formatted data.
func Parse(data []byte) (map[string]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
	}, data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing npmrc")
	}
	values := make(map[string]string)
	for _, k := range f.Section(ini.DefaultSection).Keys() {
		values[k.Name()] = k.Value()
	}
	return values, nil
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Parse(data)
}

func (c *Config) merge(values map[string]string) {
	for k, v := range values {
		c.values[k] = expandEnv(v, c.env)
	}
}

// Get returns the raw configured value of key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// With returns a copy of c with key set to value.
func (c *Config) With(key, value string) *Config {
	n := New(c.values)
	for k, v := range c.env {
		n.env[k] = v
	}
	n.values[key] = value
	return n
}

// RegistryURL returns the configured default registry, always ending in "/".
func (c *Config) RegistryURL() string {
	r, ok := c.values["registry"]
	if !ok || r == "" {
		r = DefaultRegistry
	}
	return urlx.WithTrailingSlash(r)
}

// ScopeRegistryURL returns the registry configured for scope (with or
// without its leading "@"), falling back to RegistryURL.
func (c *Config) ScopeRegistryURL(scope string) string {
	if scope == "" {
		return c.RegistryURL()
	}
	if !strings.HasPrefix(scope, "@") {
		scope = "@" + scope
	}
	if r, ok := c.values[scope+":registry"]; ok && r != "" {
		return urlx.WithTrailingSlash(r)
	}
	return c.RegistryURL()
}

func findProjectFile(dir string) string {
	dir = filepath.Clean(dir)
	for {
		p := filepath.Join(dir, ".npmrc")
		if s, err := os.Stat(p); err == nil && !s.IsDir() {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func parseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// configFromEnv maps npm_config_foo_bar=baz to foo-bar=baz. A leading
// underscore is preserved so npm_config__auth maps to _auth.
func configFromEnv(env map[string]string) map[string]string {
	values := make(map[string]string)
	for k, v := range env {
		if len(k) <= len(envPrefix) || !strings.EqualFold(k[:len(envPrefix)], envPrefix) {
			continue
		}
		key := strings.ToLower(k[len(envPrefix):])
		if strings.HasPrefix(key, "_") {
			key = "_" + strings.ReplaceAll(key[1:], "_", "-")
		} else {
			key = strings.ReplaceAll(key, "_", "-")
		}
		values[key] = v
	}
	return values
}

var envRef = regexp.MustCompile(`\$\{([^${}]+)\}`)

// expandEnv replaces ${VAR} references. Unset variables are left verbatim.
func expandEnv(v string, env map[string]string) string {
	return envRef.ReplaceAllStringFunc(v, func(ref string) string {
		if val, ok := env[ref[2:len(ref)-1]]; ok {
			return val
		}
		return ref
	})
}
