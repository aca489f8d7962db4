// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"net/http"
)

// QueryEqualsRule matches when the request URL's query parameter Name has
// exactly the value Value. A request with multiple values for Name matches
// if any one of them equals Value.
type QueryEqualsRule struct {
	Name  string
	Value string
}

var _ MatchRule = &QueryEqualsRule{}

// NewQueryEqualsRule returns a [*QueryEqualsRule] for the given name/value.
func NewQueryEqualsRule(name, value string) *QueryEqualsRule {
	return &QueryEqualsRule{Name: name, Value: value}
}

// IsMatch implements [MatchRule].
func (r *QueryEqualsRule) IsMatch(req *http.Request) bool {
	if req == nil || req.URL == nil {
		return false
	}
	for _, v := range req.URL.Query()[r.Name] {
		if v == r.Value {
			return true
		}
	}
	return false
}

// Describe implements [MatchRule].
func (r *QueryEqualsRule) Describe() string {
	return fmt.Sprintf("query %s equals %s", r.Name, r.Value)
}
