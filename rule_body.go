// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"bytes"
	"fmt"
	"net/http"
)

// BodyContainsTextRule matches when the request body, read as bytes,
// contains Text as a substring. An empty body never matches a non-empty
// Text.
//
// IsMatch reads the body via [requestBodyBytes], which the pipeline
// populates once per request (see requestbody.go); it never consumes
// req.Body directly, so downstream stages and the recording hook still see
// the full body.
type BodyContainsTextRule struct {
	Text string
}

var _ MatchRule = &BodyContainsTextRule{}

// NewBodyContainsTextRule returns a [*BodyContainsTextRule] for the given text.
func NewBodyContainsTextRule(text string) *BodyContainsTextRule {
	return &BodyContainsTextRule{Text: text}
}

// IsMatch implements [MatchRule].
func (r *BodyContainsTextRule) IsMatch(req *http.Request) bool {
	if req == nil {
		return false
	}
	return bytes.Contains(requestBodyBytes(req), []byte(r.Text))
}

// Describe implements [MatchRule].
func (r *BodyContainsTextRule) Describe() string {
	return fmt.Sprintf("body contains text %q", r.Text)
}

// BodyLengthEqualsRule matches when the request body's length in bytes
// equals Length exactly.
type BodyLengthEqualsRule struct {
	Length int
}

var _ MatchRule = &BodyLengthEqualsRule{}

// NewBodyLengthEqualsRule returns a [*BodyLengthEqualsRule] for the given length.
func NewBodyLengthEqualsRule(length int) *BodyLengthEqualsRule {
	return &BodyLengthEqualsRule{Length: length}
}

// IsMatch implements [MatchRule].
func (r *BodyLengthEqualsRule) IsMatch(req *http.Request) bool {
	if req == nil {
		return false
	}
	return len(requestBodyBytes(req)) == r.Length
}

// Describe implements [MatchRule].
func (r *BodyLengthEqualsRule) Describe() string {
	return fmt.Sprintf("body length equals %d", r.Length)
}
