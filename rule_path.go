// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"net/http"
	"path"
)

// PathEqualsRule matches when the request URL's path equals Path exactly.
type PathEqualsRule struct {
	Path string
}

var _ MatchRule = &PathEqualsRule{}

// NewPathEqualsRule returns a [*PathEqualsRule] for the given path.
func NewPathEqualsRule(p string) *PathEqualsRule {
	return &PathEqualsRule{Path: p}
}

// IsMatch implements [MatchRule].
func (r *PathEqualsRule) IsMatch(req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	return req.URL.Path == r.Path
}

// Describe implements [MatchRule].
func (r *PathEqualsRule) Describe() string {
	return fmt.Sprintf("path equals %s", r.Path)
}

// PathGlobRule matches when the request URL's path matches Pattern, a
// [path.Match]-style shell glob (supporting "*", "?", and "[...]").
//
// The distilled spec names "URL path/query equals or glob" as a rule
// variant; this is the glob half.
type PathGlobRule struct {
	Pattern string
}

var _ MatchRule = &PathGlobRule{}

// NewPathGlobRule returns a [*PathGlobRule] for the given glob pattern.
func NewPathGlobRule(pattern string) *PathGlobRule {
	return &PathGlobRule{Pattern: pattern}
}

// IsMatch implements [MatchRule]. A malformed Pattern never matches.
func (r *PathGlobRule) IsMatch(req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	ok, err := path.Match(r.Pattern, req.URL.Path)
	if err != nil {
		return false
	}
	return ok
}

// Describe implements [MatchRule].
func (r *PathGlobRule) Describe() string {
	return fmt.Sprintf("path glob %s", r.Pattern)
}
