// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

// playground serves the name check UI and proxies API calls to the service.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/google/npm-name-explorer/internal/playground"
)

var (
	host      = flag.String("host", "localhost", "interface to listen on")
	assetsDir = flag.String("assets-dir", "", "serve the UI from this directory instead of the built-in copy")
)

func main() {
	flag.Parse()
	env := playground.ParseEnv(os.Environ())
	assets, err := playground.Assets(*assetsDir)
	if err != nil {
		log.Fatalf("loading assets: %v", err)
	}
	h, err := playground.Handler(env, assets)
	if err != nil {
		log.Fatalf("configuring proxy: %v", err)
	}
	for _, r := range env.Proxy {
		log.Printf("proxying %s -> %s", r.Prefix, r.Target)
	}
	addr := fmt.Sprintf("%s:%d", *host, env.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpx.WithRequestID(h),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("playground at http://%s/", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalln(err)
	}
}
