// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"net/http"
)

// HeaderExistsRule matches when the request carries a header named Name
// (case-insensitive per [net/http.Header]), regardless of its value.
type HeaderExistsRule struct {
	Name string
}

var _ MatchRule = &HeaderExistsRule{}

// NewHeaderExistsRule returns a [*HeaderExistsRule] for the given header name.
func NewHeaderExistsRule(name string) *HeaderExistsRule {
	return &HeaderExistsRule{Name: name}
}

// IsMatch implements [MatchRule].
func (r *HeaderExistsRule) IsMatch(req *http.Request) bool {
	if req == nil {
		return false
	}
	_, ok := req.Header[http.CanonicalHeaderKey(r.Name)]
	return ok
}

// Describe implements [MatchRule].
func (r *HeaderExistsRule) Describe() string {
	return fmt.Sprintf("header %s exists", r.Name)
}

// HeaderEqualsRule matches when the request carries a header named Name with
// value exactly Value. A request with multiple values for Name matches if
// any one of them equals Value.
type HeaderEqualsRule struct {
	Name  string
	Value string
}

var _ MatchRule = &HeaderEqualsRule{}

// NewHeaderEqualsRule returns a [*HeaderEqualsRule] for the given name/value.
func NewHeaderEqualsRule(name, value string) *HeaderEqualsRule {
	return &HeaderEqualsRule{Name: name, Value: value}
}

// IsMatch implements [MatchRule].
func (r *HeaderEqualsRule) IsMatch(req *http.Request) bool {
	if req == nil {
		return false
	}
	for _, v := range req.Header.Values(r.Name) {
		if v == r.Value {
			return true
		}
	}
	return false
}

// Describe implements [MatchRule].
func (r *HeaderEqualsRule) Describe() string {
	return fmt.Sprintf("header %s equals %s", r.Name, r.Value)
}
