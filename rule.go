// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "net/http"

// MatchRule is a predicate over an HTTP request.
//
// A [Stump] ANDs together every rule it holds, in insertion order, with no
// short-circuit: see [Stump.IsMatch] for why all rules are always consulted.
// Implementations must therefore be cheap and side-effect-free with respect
// to the request; they may have observable side effects for their own
// bookkeeping (e.g. a test double counting invocations), which is exactly
// what the non-short-circuit evaluation order exists to support.
type MatchRule interface {
	// IsMatch reports whether req satisfies this rule. Implementations
	// should treat a nil req as non-matching rather than panicking.
	IsMatch(req *http.Request) bool

	// Describe returns a short human-readable description of the rule, for
	// diagnostics (e.g. "method equals GET").
	Describe() string
}
