// Copyright 2026 The ComplyCore Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apperr defines the error taxonomy every service surfaces to the
// HTTP boundary. Handlers translate a Kind to a status code exactly once;
// services never deal in status codes themselves.
package apperr

import "errors"

// Kind classifies an error for the boundary translator.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error carries a Kind and a user-safe message. The wrapped cause is for
// logs only and must never reach a response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error with the given kind and user-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a kinded error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation is shorthand for a 400-class input error.
func Validation(message string) *Error { return New(KindValidation, message) }

// Unauthenticated is shorthand for a 401-class error.
func Unauthenticated(message string) *Error { return New(KindUnauthenticated, message) }

// Forbidden is shorthand for a 403-class error.
func Forbidden(message string) *Error { return New(KindForbidden, message) }

// NotFound is shorthand for a 404-class error.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Conflict is shorthand for a 409-class error.
func Conflict(message string) *Error { return New(KindConflict, message) }

// Internal wraps an unexpected failure. The message shown to clients is
// generic; the cause stays in logs.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for
// unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-safe message from err. Unclassified errors
// collapse to a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
