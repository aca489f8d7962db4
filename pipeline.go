// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"context"
	"net/http"
)

// servedBy identifies which pipeline stage produced the final response for
// a request, used to decide which counter to increment (see §4.3, §4.7).
type servedBy int

const (
	servedByNone servedBy = iota
	servedByStump
	servedByProxy
	servedByFallback
)

// requestContext threads one request through the pipeline's stages. Each
// stage is a [Func] from *requestContext to *requestContext; rather than
// using [Func]'s error return to signal "stop the chain" (an error here
// would mean something went unexpectedly wrong, not that a stage made a
// routing decision), a stage that has already produced a response marks
// terminated and every later stage passes it through unchanged. This keeps
// "terminate vs. pass" in-band, the way the design calls for (see §4.3).
type requestContext struct {
	req *http.Request

	stumpsEnabled              bool
	externalHostName           string
	useSecureTransportUpstream bool
	fallbackResponse           FallbackResponse
	registry                   *StumpRegistry
	relay                      *UpstreamRelay
	config                     *Config

	terminated bool
	servedBy   servedBy
	matched    *Stump

	statusCode        int
	statusDescription string
	headers           []Header
	body              []byte
	respIsText        bool
	respIsImg         bool
}

// stumpMatchStage implements Stage A (see §4.3): if stumps are enabled,
// the first stump (in insertion order) whose IsMatch returns true
// terminates the pipeline with that stump's canned response.
type stumpMatchStage struct{}

var _ Func[*requestContext, *requestContext] = stumpMatchStage{}

func (stumpMatchStage) Call(_ context.Context, rc *requestContext) (*requestContext, error) {
	if rc.terminated || !rc.stumpsEnabled || rc.registry == nil {
		return rc, nil
	}
	for _, stump := range rc.registry.FindAllContracts() {
		if stump.IsMatch(rc.req) {
			resp := stump.Response()
			rc.terminated = true
			rc.servedBy = servedByStump
			rc.matched = stump
			rc.statusCode = resp.StatusCode
			rc.statusDescription = resp.StatusDescription
			rc.headers = resp.Headers
			rc.body = resp.Body
			rc.respIsText = resp.BodyIsText
			rc.respIsImg = resp.BodyIsImage
			return rc, nil
		}
	}
	return rc, nil
}

// relayStage implements Stage B (see §4.3, §4.4): forwards to the upstream
// when externalHostName is configured. A successful relay terminates with
// the upstream's response; a failed relay terminates with a synthetic 502
// (never surfaced as a raw error). When externalHostName is empty, the
// stage passes straight through to the fallback stage.
type relayStage struct{}

var _ Func[*requestContext, *requestContext] = relayStage{}

func (relayStage) Call(ctx context.Context, rc *requestContext) (*requestContext, error) {
	if rc.terminated || rc.externalHostName == "" || rc.relay == nil {
		return rc, nil
	}

	result, err := rc.relay.Forward(ctx, rc.externalHostName, rc.useSecureTransportUpstream, rc.req)
	rc.terminated = true
	if err != nil {
		if rc.config != nil && rc.config.Logger != nil {
			rc.config.Logger.Warn("upstream relay failed, serving synthetic 502",
				"host", rc.externalHostName, "error", err)
		}
		rc.servedBy = servedByProxy
		rc.statusCode = http.StatusBadGateway
		rc.headers = nil
		rc.body = nil
		return rc, nil
	}

	rc.servedBy = servedByProxy
	rc.statusCode = result.StatusCode
	rc.headers = result.Headers
	rc.body = result.Body
	rc.respIsText, rc.respIsImg = classifyBodyKind(headerValue(result.Headers, "Content-Type"))
	return rc, nil
}

// fallbackStage implements Stage C (see §4.3): writes a synthetic response
// with no body when no earlier stage terminated the pipeline.
type fallbackStage struct{}

var _ Func[*requestContext, *requestContext] = fallbackStage{}

func (fallbackStage) Call(_ context.Context, rc *requestContext) (*requestContext, error) {
	if rc.terminated {
		return rc, nil
	}
	rc.terminated = true
	rc.servedBy = servedByFallback
	rc.statusCode = rc.fallbackResponse.StatusCode()
	rc.headers = nil
	rc.body = nil
	return rc, nil
}

// requestPipeline is the Compose3 chain of stump-match, upstream-relay, and
// fallback stages (see §2, component 6).
var requestPipeline = Compose3[*requestContext, *requestContext, *requestContext, *requestContext](
	stumpMatchStage{},
	relayStage{},
	fallbackStage{},
)

func headerValue(headers []Header, name string) string {
	for _, h := range headers {
		if equalFoldHeaderName(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func equalFoldHeaderName(a, b string) bool {
	return http.CanonicalHeaderKey(a) == http.CanonicalHeaderKey(b)
}
