// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package playground

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/npm-name-explorer/internal/httpx"
	"github.com/pkg/errors"
)

//go:embed assets
var embedded embed.FS

// Assets returns the UI files: dir on disk if set, else the built-in copy.
func Assets(dir string) (billy.Filesystem, error) {
	if dir != "" {
		return osfs.New(dir), nil
	}
	mfs := memfs.New()
	err := fs.WalkDir(embedded, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := embedded.ReadFile(p)
		if err != nil {
			return err
		}
		return util.WriteFile(mfs, strings.TrimPrefix(p, "assets/"), data, 0644)
	})
	if err != nil {
		return nil, errors.Wrap(err, "loading embedded assets")
	}
	return mfs, nil
}

// Handler serves the UI from assets and proxies API prefixes per env.
func Handler(env Env, assets billy.Filesystem) (http.Handler, error) {
	return ConfigureProxy(env.Proxy, httpx.FSHandler(assets))
}
