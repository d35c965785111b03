// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"crypto/tls"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// ConfigureProxy returns a handler that forwards requests matching a rule's
// prefix to its target and passes everything else to next. Rules are tried
// in order. The prefix is stripped from the forwarded path, the Host header
// is set to the target's and certificate checks are skipped for https
// targets.
func ConfigureProxy(rules []ProxyRule, next http.Handler) (http.Handler, error) {
	var routes []route
	for _, rule := range rules {
		target, err := url.Parse(rule.Target)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, errors.Errorf("invalid proxy target for %q: %q", rule.Prefix, rule.Target)
		}
		routes = append(routes, route{prefix: rule.Prefix, proxy: newProxy(rule.Prefix, target)})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, rt := range routes {
			if strings.HasPrefix(r.URL.Path, rt.prefix) {
				rt.proxy.ServeHTTP(w, r)
				return
			}
		}
		next.ServeHTTP(w, r)
	}), nil
}

func newProxy(prefix string, target *url.URL) *httputil.ReverseProxy {
	p := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			out := pr.Out.URL
			out.Path = strings.TrimPrefix(out.Path, prefix)
			if out.RawPath != "" {
				out.RawPath = strings.TrimPrefix(out.RawPath, prefix)
			}
			pr.SetURL(target)
			pr.SetXForwarded()
		},
	}
	if target.Scheme == "https" {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		p.Transport = t
	}
	return p
}
