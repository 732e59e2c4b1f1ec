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
	"fmt"
	"regexp"

	"go.mercari.io/reveng/models"
)

// TableFilter matches tables by catalog, schema and name patterns. A matching
// filter decides inclusion and may assign a package and meta attributes.
type TableFilter struct {
	MatchCatalog string
	MatchSchema  string
	MatchName    string

	// Exclude is the verdict for matching tables. A filter with Exclude false
	// is an include filter.
	Exclude        bool
	Package        string
	MetaAttributes map[string][]string

	catalog *regexp.Regexp
	schema  *regexp.Regexp
	name    *regexp.Regexp
}

// NewTableFilter compiles the patterns of a filter. An empty pattern matches
// everything.
func NewTableFilter(matchCatalog, matchSchema, matchName string) (*TableFilter, error) {
	f := &TableFilter{
		MatchCatalog: matchCatalog,
		MatchSchema:  matchSchema,
		MatchName:    matchName,
	}
	if err := f.compile(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *TableFilter) compile() error {
	var err error
	if f.catalog, err = compilePattern(f.MatchCatalog); err != nil {
		return fmt.Errorf("invalid catalog pattern: %w", err)
	}
	if f.schema, err = compilePattern(f.MatchSchema); err != nil {
		return fmt.Errorf("invalid schema pattern: %w", err)
	}
	if f.name, err = compilePattern(f.MatchName); err != nil {
		return fmt.Errorf("invalid name pattern: %w", err)
	}
	return nil
}

func (f *TableFilter) compiled() bool {
	return f.catalog != nil && f.schema != nil && f.name != nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if p == "" {
		p = ".*"
	}
	return regexp.Compile("^(?:" + p + ")$")
}

// Matches reports whether the filter applies to ti.
func (f *TableFilter) Matches(ti models.TableIdentifier) bool {
	return f.catalog.MatchString(ti.Catalog) &&
		f.schema.MatchString(ti.Schema) &&
		f.name.MatchString(ti.Name)
}

// ExcludeVerdict returns the verdict of the filter for ti. ok is false when
// the filter does not match.
func (f *TableFilter) ExcludeVerdict(ti models.TableIdentifier) (exclude bool, ok bool) {
	if !f.Matches(ti) {
		return false, false
	}
	return f.Exclude, true
}

// PackageFor returns the package of the filter if it matches ti.
func (f *TableFilter) PackageFor(ti models.TableIdentifier) string {
	if !f.Matches(ti) {
		return ""
	}
	return f.Package
}

// MetaAttributesFor returns the meta attributes of the filter if it matches
// ti.
func (f *TableFilter) MetaAttributesFor(ti models.TableIdentifier) map[string][]string {
	if !f.Matches(ti) {
		return nil
	}
	return f.MetaAttributes
}

func (f *TableFilter) String() string {
	verdict := "include"
	if f.Exclude {
		verdict = "exclude"
	}
	return fmt.Sprintf("%s catalog=%q schema=%q name=%q", verdict, f.MatchCatalog, f.MatchSchema, f.MatchName)
}

// FilterChain is an ordered list of table filters.
type FilterChain []*TableFilter

// PackageFor returns the first package assigned to ti.
func (c FilterChain) PackageFor(ti models.TableIdentifier) (string, bool) {
	for _, f := range c {
		if pkg := f.PackageFor(ti); pkg != "" {
			return pkg, true
		}
	}
	return "", false
}

// IsExcluded reports whether ti is excluded. The first filter matching ti
// decides; if none does, tables are excluded only when the chain contains an
// include filter.
func (c FilterChain) IsExcluded(ti models.TableIdentifier) bool {
	if exclude, ok := c.explicitVerdict(ti); ok {
		return exclude
	}
	return c.defaultVerdict()
}

func (c FilterChain) explicitVerdict(ti models.TableIdentifier) (bool, bool) {
	for _, f := range c {
		if exclude, ok := f.ExcludeVerdict(ti); ok {
			return exclude, true
		}
	}
	return false, false
}

// defaultVerdict excludes everything once a single include filter exists.
func (c FilterChain) defaultVerdict() bool {
	for _, f := range c {
		if !f.Exclude {
			return true
		}
	}
	return false
}

// GeneralAttributesFor returns the first meta attributes assigned to ti.
func (c FilterChain) GeneralAttributesFor(ti models.TableIdentifier) map[string][]string {
	for _, f := range c {
		if attrs := f.MetaAttributesFor(ti); attrs != nil {
			return attrs
		}
	}
	return nil
}
