// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// api serves the npm name check over HTTP.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/npm-name-explorer/internal/api"
	"github.com/google/npm-name-explorer/internal/api/nameservice"
	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/internal/npmrc"
	"github.com/google/npm-name-explorer/internal/settings"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	configFile = flag.String("config", "", "path to a TOML settings file")
	listen     = flag.String("listen", "", "address to listen on (default "+settings.DefaultListen+")")
	registry   = flag.String("registry", "", "registry URL overriding the npm configuration")
	userAgent  = flag.String("user-agent", "", "User-Agent sent to the registry")
	timeout    = flag.Duration("timeout", 0, "per-probe timeout (default 10s)")
	npmrcFiles = flag.String("npmrc", "", "path of an extra .npmrc file applied after the project one")
)

func loadSettings() (*settings.Settings, error) {
	s := settings.Default()
	if *configFile != "" {
		var err error
		if s, err = settings.Load(osfs.New("/"), *configFile); err != nil {
			return nil, err
		}
	}
	// Flags win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			s.Listen = *listen
		case "registry":
			s.Registry = *registry
		case "user-agent":
			s.UserAgent = *userAgent
		case "timeout":
			s.Timeout = timeout.String()
		case "npmrc":
			s.NPMRC = append(s.NPMRC, *npmrcFiles)
		}
	})
	return s, s.Validate()
}

func buildResolver(s *settings.Settings) (*npmname.Resolver, error) {
	cfg, err := npmrc.Load(npmrc.LoadOptions{Files: s.NPMRC})
	if err != nil {
		return nil, errors.Wrap(err, "loading npm config")
	}
	if s.Registry != "" {
		cfg = cfg.With("registry", s.Registry)
	}
	d, err := s.ProbeTimeout()
	if err != nil {
		return nil, err
	}
	return &npmname.Resolver{
		Client:  &httpx.WithUserAgent{BasicClient: &http.Client{}, UserAgent: s.UserAgent},
		Config:  cfg,
		Timeout: d,
	}, nil
}

func main() {
	flag.Parse()
	s, err := loadSettings()
	if err != nil {
		log.Fatalf("loading settings: %v", err)
	}
	resolver, err := buildResolver(s)
	if err != nil {
		log.Fatalf("building resolver: %v", err)
	}
	log.Printf("resolving against %s", resolver.Config.RegistryURL())
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := nameservice.NewMetrics(reg)
	mux := http.NewServeMux()
	nameservice.Register(mux, api.Static(&nameservice.CheckNameDeps{Checker: metrics.Instrument(resolver)}))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              s.Listen,
		Handler:           httpx.WithRequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("listening on %s", s.Listen)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalln(err)
	}
}
