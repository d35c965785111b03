// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Envelope types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// SuccessMessage is the message attached to every successful envelope.
const SuccessMessage = "ok"

// Envelope wraps every JSON response body. Code mirrors the HTTP status.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Data    *T     `json:"data"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Success returns the envelope for a successful result.
func Success[T any](data *T) Envelope[T] {
	return Envelope[T]{Code: http.StatusOK, Data: data, Message: SuccessMessage, Type: TypeSuccess}
}

// Failure returns an error envelope with no data.
func Failure[T any](code int, message string) Envelope[T] {
	return Envelope[T]{Code: code, Message: message, Type: TypeError}
}

// ResponseError is an error envelope received by a Stub.
type ResponseError struct {
	Code    int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return e.Message
}

// GRPCStatus allows status.Code and status.Convert to classify e.
func (e *ResponseError) GRPCStatus() *status.Status {
	return status.New(httpToGRPC(e.Code), e.Error())
}

func httpToGRPC(code int) codes.Code {
	switch code {
	case http.StatusOK:
		return codes.OK
	case 499:
		return codes.Canceled
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.Aborted
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case http.StatusInternalServerError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
