// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "time"

// RecordedRequest is an immutable snapshot of one intercepted HTTP request.
type RecordedRequest struct {
	Method  string
	Path    string
	Query   string
	Headers []Header
	Body    []byte
	IsText  bool
	IsImage bool
}

// RecordedResponse is an immutable snapshot of the response a pipeline
// stage produced for a request, whichever stage produced it (stump, relay,
// or fallback).
type RecordedResponse struct {
	StatusCode int

	// StatusDescription carries a matched stump's [CannedResponse]
	// StatusDescription, if any, for display purposes; it was never part
	// of the HTTP status line actually written to the client (see
	// [CannedResponse.StatusDescription]).
	StatusDescription string

	Headers []Header
	Body    []byte
	IsText  bool
	IsImage bool
}

// RecordedContext pairs a request with the response served for it. It is
// immutable after construction: callers must treat the Headers and Body
// slices as read-only, since the RecordingBuffer hands out these values
// directly in its snapshots (see §3, §4.5 of the design).
type RecordedContext struct {
	Request    RecordedRequest
	Response   RecordedResponse
	ReceivedAt time.Time
}

// NewRecordedContext builds a [RecordedContext] from a request and response
// snapshot and the time the response was written.
func NewRecordedContext(req RecordedRequest, resp RecordedResponse, receivedAt time.Time) *RecordedContext {
	return &RecordedContext{
		Request:    req,
		Response:   resp,
		ReceivedAt: receivedAt,
	}
}
