// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"net/http"
	"strings"
)

// MethodEqualsRule matches when the request's HTTP method equals Method,
// compared case-insensitively (HTTP methods are conventionally uppercase,
// but the rule tolerates callers who didn't normalise theirs).
type MethodEqualsRule struct {
	Method string
}

var _ MatchRule = &MethodEqualsRule{}

// NewMethodEqualsRule returns a [*MethodEqualsRule] for the given method.
func NewMethodEqualsRule(method string) *MethodEqualsRule {
	return &MethodEqualsRule{Method: method}
}

// IsMatch implements [MatchRule].
func (r *MethodEqualsRule) IsMatch(req *http.Request) bool {
	if req == nil {
		return false
	}
	return strings.EqualFold(req.Method, r.Method)
}

// Describe implements [MatchRule].
func (r *MethodEqualsRule) Describe() string {
	return fmt.Sprintf("method equals %s", r.Method)
}
