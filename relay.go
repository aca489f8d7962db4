// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/http2"
)

// hopByHopHeaders lists headers that must not be forwarded across a proxy
// hop, per RFC 7230 §6.1.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// UpstreamRelay forwards an intercepted request to a configured upstream
// host and relays the response back (see §4.4). One UpstreamRelay instance
// is shared by all requests handled by a given [*Instance].
type UpstreamRelay struct {
	config      *Config
	client      *http.Client
	cancelWatch *CancelWatchFunc
}

// NewUpstreamRelay returns an [*UpstreamRelay] using cfg for its dialer,
// timeout, and logging. If cfg is nil, [NewConfig] defaults are used.
func NewUpstreamRelay(cfg *Config) *UpstreamRelay {
	if cfg == nil {
		cfg = NewConfig()
	}
	relay := &UpstreamRelay{config: cfg, cancelWatch: NewCancelWatchFunc()}
	transport := &http.Transport{
		DialContext: relay.dialContext,
	}
	// Enable HTTP/2 when the upstream negotiates it over TLS via ALPN.
	_ = http2.ConfigureTransport(transport)
	relay.client = &http.Client{
		Transport: transport,
		Timeout:   cfg.UpstreamTimeout,
		// The relay streams the upstream's response verbatim; it must
		// not follow redirects on the client's behalf.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return relay
}

// dialContext dials using the configured [Dialer] and wraps the resulting
// connection with [CancelWatchFunc] so that disposing the owning instance
// (which cancels the relay's context tree) closes any in-flight upstream
// connection immediately rather than waiting for it to time out on its own.
func (u *UpstreamRelay) dialContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := u.config.Dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	return u.cancelWatch.Call(ctx, conn)
}

// RelayResult carries the upstream response snapshot the pipeline needs to
// both write the client response and build a [RecordedContext].
type RelayResult struct {
	StatusCode int
	Headers    []Header
	Body       []byte
}

// Forward builds a target URL from scheme, externalHostName, req's path and
// query, forwards method/headers (excluding hop-by-hop)/body, and returns
// the upstream's response snapshot.
//
// Forward never retries. On dial, write, or read failure it returns an
// error wrapping [ErrUpstreamFailure]; callers (see pipeline.go) translate
// this to an HTTP 502 rather than propagating it to the client.
func (u *UpstreamRelay) Forward(ctx context.Context, externalHostName string, useSecureTransport bool, req *http.Request) (*RelayResult, error) {
	scheme := "http"
	if useSecureTransport {
		scheme = "https"
	}

	target := *req.URL
	target.Scheme = scheme
	target.Host = externalHostName

	ctx, cancel := context.WithTimeout(ctx, u.config.UpstreamTimeout)
	defer cancel()

	var bodyReader io.Reader
	if data := requestBodyBytes(req); data != nil {
		bodyReader = strings.NewReader(string(data))
	}

	outReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), bodyReader)
	if err != nil {
		return nil, classifyUpstreamError(u.config, err)
	}
	copyForwardableHeaders(req.Header, outReq.Header)

	resp, err := u.client.Do(outReq)
	if err != nil {
		return nil, classifyUpstreamError(u.config, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyUpstreamError(u.config, err)
	}

	return &RelayResult{
		StatusCode: resp.StatusCode,
		Headers:    headersFromHTTP(resp.Header),
		Body:       body,
	}, nil
}

func classifyUpstreamError(cfg *Config, err error) error {
	kind := cfg.ErrClassifier.Classify(err)
	cfg.Logger.Warn("upstream relay failed", "error", err, "kind", kind)
	return &upstreamError{kind: kind, cause: err}
}

// upstreamError wraps an upstream failure with its [ErrClassifier] kind,
// and unwraps to [ErrUpstreamFailure] so callers can test with
// [errors.Is](err, [ErrUpstreamFailure]).
type upstreamError struct {
	kind  string
	cause error
}

func (e *upstreamError) Error() string {
	return "stumps: upstream failure (" + e.kind + "): " + e.cause.Error()
}

func (e *upstreamError) Unwrap() error {
	return ErrUpstreamFailure
}

func copyForwardableHeaders(src, dst http.Header) {
	for name, values := range src {
		if isHopByHop(name) {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}

func isHopByHop(name string) bool {
	for _, h := range hopByHopHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}

func headersFromHTTP(h http.Header) []Header {
	out := make([]Header, 0, len(h))
	for name, values := range h {
		for _, v := range values {
			out = append(out, Header{Name: name, Value: v})
		}
	}
	return out
}

// classifyBodyKind reports whether a body with the given Content-Type
// should be flagged as text or image in a [RecordedContext] or
// [CannedResponse]. Classification is advisory only (see §4.4).
func classifyBodyKind(contentType string) (isText, isImage bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return false, true
	case strings.HasPrefix(ct, "text/"),
		strings.Contains(ct, "json"),
		strings.Contains(ct, "xml"),
		strings.Contains(ct, "html"),
		strings.Contains(ct, "javascript"):
		return true, false
	default:
		return false, false
	}
}
