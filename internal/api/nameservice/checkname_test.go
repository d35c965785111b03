// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package nameservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/npm-name-explorer/internal/api"
	"github.com/google/npm-name-explorer/internal/httpx/httpxtest"
	"github.com/google/npm-name-explorer/internal/npmrc"
	"github.com/google/npm-name-explorer/internal/urlx"
	"github.com/google/npm-name-explorer/pkg/npmname"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeChecker struct {
	known map[string]bool
	err   error
	opts  []npmname.Options
}

func (f *fakeChecker) Exists(_ context.Context, name string, opts npmname.Options) (bool, error) {
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return false, f.err
	}
	if name == "" {
		return false, npmname.ErrMissingName
	}
	return f.known[name], nil
}

func TestCheckName(t *testing.T) {
	for _, tc := range []struct {
		name     string
		req      CheckNameRequest
		checkErr error
		want     *CheckNameResponse
		wantCode codes.Code
	}{
		{name: "exists", req: CheckNameRequest{Name: "lodash"}, want: &CheckNameResponse{PackageExists: true}},
		{name: "missing", req: CheckNameRequest{Name: "nonexistent-package"}, want: &CheckNameResponse{PackageExists: false}},
		{name: "empty", req: CheckNameRequest{}, wantCode: codes.InvalidArgument},
		{name: "invalid name", req: CheckNameRequest{Name: "Bad Name"}, checkErr: &npmname.InvalidNameError{Name: "Bad Name"}, wantCode: codes.InvalidArgument},
		{name: "invalid registry", req: CheckNameRequest{Name: "x"}, checkErr: errors.Wrap(npmname.ErrInvalidRegistryURL, "nope"), wantCode: codes.InvalidArgument},
		{name: "probe failure", req: CheckNameRequest{Name: "x"}, checkErr: &npmname.ProbeError{URL: "https://registry.npmjs.org/x", StatusCode: 500}, wantCode: codes.Unavailable},
		{name: "canceled", req: CheckNameRequest{Name: "x"}, checkErr: &npmname.ProbeError{Err: context.Canceled}, wantCode: codes.Canceled},
		{name: "unexpected", req: CheckNameRequest{Name: "x"}, checkErr: errors.New("boom"), wantCode: codes.Internal},
	} {
		t.Run(tc.name, func(t *testing.T) {
			deps := &CheckNameDeps{Checker: &fakeChecker{known: map[string]bool{"lodash": true}, err: tc.checkErr}}
			got, err := CheckName(context.Background(), tc.req, deps)
			if tc.wantCode != codes.OK {
				if code := status.Code(err); code != tc.wantCode {
					t.Fatalf("CheckName() code = %v (err %v), want %v", code, err, tc.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckName() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CheckName() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	checker := &fakeChecker{known: map[string]bool{"lodash": true, "@babel/core": true, "@vercel": true}}
	mux := http.NewServeMux()
	Register(mux, api.Static(&CheckNameDeps{Checker: checker}))
	t.Setenv("K_REVISION", "rev-42")
	for _, tc := range []struct {
		path     string
		wantCode int
		want     string
	}{
		{"/api/check-npm-name/lodash", 200, `{"code":200,"data":{"packageExists":true},"message":"ok","type":"success"}`},
		{"/api/check-npm-name/@babel/core", 200, `{"code":200,"data":{"packageExists":true},"message":"ok","type":"success"}`},
		{"/api/check-npm-name/@vercel", 200, `{"code":200,"data":{"packageExists":true},"message":"ok","type":"success"}`},
		{"/api/check-npm-name/unknown-thing", 200, `{"code":200,"data":{"packageExists":false},"message":"ok","type":"success"}`},
		{"/api/check-npm-name/", 400, `{"code":400,"data":null,"message":"package name required","type":"error"}`},
		{"/api/check-npm-name/lodash?registry=nope", 200, `{"code":200,"data":{"packageExists":true},"message":"ok","type":"success"}`},
		{"/version", 200, `{"code":200,"data":{"version":"rev-42"},"message":"ok","type":"success"}`},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			var got, want any
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decoding %q: %v", rec.Body.String(), err)
			}
			if err := json.Unmarshal([]byte(tc.want), &want); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistryQueryIgnored(t *testing.T) {
	checker := &fakeChecker{}
	mux := http.NewServeMux()
	Register(mux, api.Static(&CheckNameDeps{Checker: checker}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/check-npm-name/lodash?registry=https://npm.example.com/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := []npmname.Options{{}}
	if diff := cmp.Diff(want, checker.opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryQueryCannotRedirectCredentials(t *testing.T) {
	var foreignHits atomic.Int32
	var foreignAuth atomic.Value
	foreign := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		foreignHits.Add(1)
		foreignAuth.Store(r.Header.Get("Authorization"))
	}))
	defer foreign.Close()
	var registryAuth atomic.Value
	registry := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		registryAuth.Store(r.Header.Get("Authorization"))
		if r.Method != http.MethodHead || r.URL.Path != "/lodash" {
			rw.WriteHeader(http.StatusNotFound)
		}
	}))
	defer registry.Close()
	resolver := &npmname.Resolver{
		Client: registry.Client(),
		Config: npmrc.New(map[string]string{
			"registry": registry.URL,
			"_auth":    "c2VydmVyOnNlY3JldA==",
		}),
	}
	mux := http.NewServeMux()
	Register(mux, api.Static(&CheckNameDeps{Checker: resolver}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/check-npm-name/lodash?registry="+url.QueryEscape(foreign.URL+"/"), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if n := foreignHits.Load(); n != 0 {
		t.Errorf("foreign host received %d requests (Authorization %q), want 0", n, foreignAuth.Load())
	}
	if got, want := registryAuth.Load(), "Basic c2VydmVyOnNlY3JldA=="; got != want {
		t.Errorf("registry Authorization = %v, want %q", got, want)
	}
}

func TestClient(t *testing.T) {
	checker := &fakeChecker{known: map[string]bool{"@babel/core": true}}
	mux := http.NewServeMux()
	Register(mux, api.Static(&CheckNameDeps{Checker: checker}))
	srv := httptest.NewServer(mux)
	defer srv.Close()
	c := NewClient(srv.Client(), urlx.MustParse(srv.URL))
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		want bool
	}{
		{"@babel/core", true},
		{"left-pad", false},
	} {
		got, err := c.Exists(ctx, tc.name, npmname.Options{})
		if err != nil {
			t.Fatalf("Exists(%q) error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("Exists(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
	if _, err := c.Exists(ctx, "", npmname.Options{}); !errors.Is(err, npmname.ErrMissingName) {
		t.Errorf("Exists(\"\") error = %v, want %v", err, npmname.ErrMissingName)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	mock := &httpxtest.MockClient{
		Calls: []httpxtest.Call{{
			Method: "GET",
			URL:    "http://localhost:3000/api/check-npm-name/@nonexistent-scope/pkg",
			Response: &http.Response{
				StatusCode: http.StatusServiceUnavailable,
				Status:     "503 Service Unavailable",
				Body:       httpxtest.Body(`{"code":503,"data":null,"message":"probing https://registry.npmjs.org/x: npm registry error: 500 Internal Server Error","type":"error"}`),
			},
		}},
		URLValidator: httpxtest.NewURLValidator(t),
	}
	c := NewClient(mock, urlx.MustParse("http://localhost:3000"))
	_, err := c.Exists(context.Background(), "@nonexistent-scope/pkg", npmname.Options{})
	var re *api.ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("Exists() error = %v, want *ResponseError", err)
	}
	if re.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d, want 503", re.Code)
	}
	if status.Code(err) != codes.Unavailable {
		t.Errorf("status.Code() = %v, want Unavailable", status.Code(err))
	}
}
