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
	"io"
	"io/fs"
	"os"
)

// AddFile reads the override document at path.
func (r *Repository) AddFile(path string) error {
	r.logger.Info().Str("file", path).Msg("override file")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r.configurationError(path, fmt.Errorf("%w: %w", ErrResourceNotFound, err))
		}
		return r.configurationError(path, fmt.Errorf("%w: %w", ErrIO, err))
	}

	return r.AddReader(path, f)
}

// AddResource reads the override document name from the first resource file
// system containing it.
func (r *Repository) AddResource(name string) error {
	r.logger.Info().Str("resource", name).Msg("override resource")

	for _, fsys := range r.resources {
		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			continue
		}
		if err != nil {
			return r.configurationError(name, fmt.Errorf("%w: %w", ErrIO, err))
		}
		return r.AddReader(name, f)
	}

	return r.configurationError(name, ErrResourceNotFound)
}

// AddReader reads an override document from rc and closes it. name
// identifies the document in errors.
func (r *Repository) AddReader(name string, rc io.ReadCloser) (err error) {
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			r.logger.Error().Err(cerr).Str("resource", name).Msg("could not close input stream")
			if err == nil {
				err = r.configurationError(name, fmt.Errorf("%w: %w", ErrIO, cerr))
			}
		}
	}()

	b, err := io.ReadAll(rc)
	if err != nil {
		return r.configurationError(name, fmt.Errorf("%w: %w", ErrIO, err))
	}

	doc, err := ParseDocument(b)
	if err != nil {
		return r.configurationError(name, err)
	}

	if err := r.apply(doc); err != nil {
		return r.configurationError(name, err)
	}

	return nil
}

func (r *Repository) configurationError(resource string, err error) error {
	r.logger.Error().Err(err).Str("resource", resource).Msg("could not configure overrides")
	return &ConfigurationError{Resource: resource, Err: err}
}
