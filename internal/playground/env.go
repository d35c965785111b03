// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package playground serves the browser UI for the name check together with
// a development proxy to the API service.
package playground

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
)

// DefaultPort is used when PLAYGROUND_PORT is unset or not a number.
const DefaultPort = 8888

const (
	envPort  = "PLAYGROUND_PORT"
	envProxy = "PLAYGROUND_PROXY"
)

// ProxyRule forwards requests whose path starts with Prefix to Target.
type ProxyRule struct {
	Prefix string
	Target string
}

// Env is the playground configuration read from the environment.
type Env struct {
	Port  int
	Proxy []ProxyRule
}

// ParseEnv reads PLAYGROUND_PORT and PLAYGROUND_PROXY from environ
// ("KEY=value" entries). The proxy list is JSON of [prefix, target] pairs;
// single quotes are accepted in place of double quotes. A malformed list
// is logged and ignored.
func ParseEnv(environ []string) Env {
	e := Env{Port: DefaultPort}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		v = strings.ReplaceAll(v, `\n`, "\n")
		switch k {
		case envPort:
			if p, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && p != 0 {
				e.Port = p
			}
		case envProxy:
			if strings.TrimSpace(v) == "" {
				continue
			}
			rules, err := parseProxy(v)
			if err != nil {
				log.Printf("ignoring %s: %v", envProxy, err)
				continue
			}
			e.Proxy = rules
		}
	}
	return e
}

func parseProxy(v string) ([]ProxyRule, error) {
	var pairs [][2]string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(v, "'", `"`)), &pairs); err != nil {
		return nil, err
	}
	rules := make([]ProxyRule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, ProxyRule{Prefix: p[0], Target: p[1]})
	}
	return rules, nil
}
