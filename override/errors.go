// Copyright (c) 2020 Mercari, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package override

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound is returned when a resource cannot be located by any
	// of the configured file systems.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDocumentInvalid is returned when an override document fails
	// validation.
	ErrDocumentInvalid = errors.New("invalid override definition")

	// ErrIO is returned when reading or closing an override document fails.
	ErrIO = errors.New("i/o failure")

	// ErrDelegation is returned when a query falls through to a baseline
	// strategy that was not supplied.
	ErrDelegation = errors.New("no baseline strategy to delegate to")
)

// ConfigurationError wraps every failure of an ingestion call.
type ConfigurationError struct {
	Resource string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("could not configure overrides from %s: %v", e.Resource, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DelegationError is returned by a Decorator without baseline when a query
// finds no override.
type DelegationError struct {
	Capability string
}

func (e *DelegationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Capability, ErrDelegation)
}

func (e *DelegationError) Is(target error) bool {
	return target == ErrDelegation
}
