// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

// Header is a single (name, value) pair. CannedResponse and RecordedRequest/
// RecordedResponse keep headers as an ordered sequence rather than a map so
// that duplicate header names (legal in HTTP) and insertion order survive a
// round trip through a stump.
type Header struct {
	Name  string
	Value string
}

// CannedResponse is the fixed reply a [Stump] serves when it matches a
// request.
//
// Image/text flags are advisory only: they describe how a caller (e.g. an
// administration UI) should render the body, and have no effect on matching
// or serving.
type CannedResponse struct {
	// StatusCode is the HTTP status code to serve, in [100, 599].
	StatusCode int

	// StatusDescription is the HTTP status line's reason phrase. It is
	// carried through to a request's [RecordedResponse] for display
	// purposes, but is never written to the live wire response:
	// [net/http.ResponseWriter.WriteHeader] takes only a status code and
	// derives the reason phrase from it via [net/http.StatusText], with no
	// API to override it short of hijacking the connection and writing a
	// raw status line by hand. The listener does not do that, so a served
	// response's reason phrase always matches StatusCode, regardless of
	// StatusDescription.
	StatusDescription string

	// Headers is the ordered sequence of response headers. Names are
	// compared case-insensitively; duplicates are allowed and are all
	// written to the wire.
	Headers []Header

	// Body is the opaque response body. May be empty.
	Body []byte

	// BodyContentType is the advisory Content-Type of Body.
	BodyContentType string

	// BodyIsImage is an advisory flag: true if Body represents image data.
	BodyIsImage bool

	// BodyIsText is an advisory flag: true if Body represents text data.
	BodyIsText bool
}

// Clone returns a deep copy of r, so that a caller mutating the returned
// value cannot affect the original. [StumpRegistry.FindAllContracts] does
// not call it: its snapshots share each stump's CannedResponse.
func (r *CannedResponse) Clone() *CannedResponse {
	if r == nil {
		return nil
	}
	headers := make([]Header, len(r.Headers))
	copy(headers, r.Headers)
	body := make([]byte, len(r.Body))
	copy(body, r.Body)
	clone := *r
	clone.Headers = headers
	clone.Body = body
	return &clone
}
