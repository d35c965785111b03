// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package httpxtest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

func Body(b string) io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(b)))
}

// Status returns an empty-bodied response with the given status code.
func Status(code int) *http.Response {
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode: code,
		Body:       Body(""),
		Header:     http.Header{},
	}
}
