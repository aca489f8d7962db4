// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "errors"

// Sentinel error kinds. Use [errors.Is] to test a returned error against
// these; concrete errors are wrapped with additional context via
// [fmt.Errorf]'s %w verb.
var (
	// ErrInvalidArgument signals an absent required argument, an empty value
	// where a non-empty one is required, a numeric value out of range, or a
	// duplicate stump name.
	ErrInvalidArgument = errors.New("stumps: invalid argument")

	// ErrNotFound signals an unknown stump id or instance id.
	ErrNotFound = errors.New("stumps: not found")

	// ErrInvalidState signals an operation attempted on a disposed instance
	// or listener.
	ErrInvalidState = errors.New("stumps: invalid state")

	// ErrUpstreamFailure signals that the upstream relay could not reach or
	// read from the configured upstream host. Request handling never
	// propagates this error to the client; it is translated to an HTTP 502.
	ErrUpstreamFailure = errors.New("stumps: upstream failure")

	// ErrPersistenceFailure signals that the [DataStore] collaborator
	// failed. Propagated synchronously to the administrative caller.
	ErrPersistenceFailure = errors.New("stumps: persistence failure")
)
