// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStumpRejectsEmptyIDOrName(t *testing.T) {
	_, err := NewStump("", "name")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewStump("id", "  ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	assert.Equal(t, "id1", s.ID())
	assert.Equal(t, "name1", s.Name())
}

func TestStumpAddRuleRejectsNil(t *testing.T) {
	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	assert.ErrorIs(t, s.AddRule(nil), ErrInvalidArgument)
}

func TestStumpSetResponseRejectsNil(t *testing.T) {
	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetResponse(nil), ErrInvalidArgument)
	assert.Nil(t, s.Response())
}

func TestStumpIsMatchFalseWithoutRulesOrResponse(t *testing.T) {
	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/a", nil)

	assert.False(t, s.IsMatch(req))
	assert.False(t, s.IsMatch(nil))

	require.NoError(t, s.AddRule(NewMethodEqualsRule(http.MethodGet)))
	assert.False(t, s.IsMatch(req), "no response set yet")
}

func TestStumpIsMatchANDsAllRules(t *testing.T) {
	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	require.NoError(t, s.SetResponse(&CannedResponse{StatusCode: 200}))
	require.NoError(t, s.AddRule(NewMethodEqualsRule(http.MethodGet)))
	require.NoError(t, s.AddRule(NewPathEqualsRule("/a")))

	match := httptest.NewRequest(http.MethodGet, "/a", nil)
	assert.True(t, s.IsMatch(match))

	noMatch := httptest.NewRequest(http.MethodPost, "/a", nil)
	assert.False(t, s.IsMatch(noMatch))
}

// countingRule records every invocation, letting tests assert that every
// rule is consulted even once the overall result is already determined.
type countingRule struct {
	result bool
	calls  int
}

func (r *countingRule) IsMatch(_ *http.Request) bool {
	r.calls++
	return r.result
}

func (r *countingRule) Describe() string {
	return "counting rule"
}

func TestStumpIsMatchEvaluatesEveryRuleNoShortCircuit(t *testing.T) {
	s, err := NewStump("id1", "name1")
	require.NoError(t, err)
	require.NoError(t, s.SetResponse(&CannedResponse{StatusCode: 200}))

	first := &countingRule{result: false}
	second := &countingRule{result: true}
	require.NoError(t, s.AddRule(first))
	require.NoError(t, s.AddRule(second))

	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	assert.False(t, s.IsMatch(req))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}
