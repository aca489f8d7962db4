// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequestContext(t *testing.T, method, target string) *requestContext {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req, err := bufferRequestBody(req)
	require.NoError(t, err)
	return &requestContext{
		req:              req,
		fallbackResponse: Http503ServiceUnavailable,
		registry:         NewStumpRegistry(nil, "srv"),
		config:           NewConfig(),
	}
}

func TestPipelineFallbackWhenNothingConfigured(t *testing.T) {
	rc := newTestRequestContext(t, http.MethodGet, "/foo")

	out, err := requestPipeline.Call(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, out.terminated)
	assert.Equal(t, servedByFallback, out.servedBy)
	assert.Equal(t, 503, out.statusCode)
	assert.Empty(t, out.body)
}

func TestPipelineRelaysWhenExternalHostConfigured(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hi"))
	}))
	defer upstream.Close()
	upstreamURL, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	rc := newTestRequestContext(t, http.MethodGet, "/a?b=1")
	rc.externalHostName = upstreamURL.Host
	rc.relay = NewUpstreamRelay(rc.config)

	out, err := requestPipeline.Call(context.Background(), rc)
	require.NoError(t, err)
	assert.True(t, out.terminated)
	assert.Equal(t, servedByProxy, out.servedBy)
	assert.Equal(t, http.StatusOK, out.statusCode)
	assert.Equal(t, []byte("hi"), out.body)
}

func TestPipelineRelayFailureYields502(t *testing.T) {
	rc := newTestRequestContext(t, http.MethodGet, "/a")
	rc.externalHostName = "127.0.0.1:1"
	rc.relay = NewUpstreamRelay(rc.config)

	out, err := requestPipeline.Call(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, servedByProxy, out.servedBy)
	assert.Equal(t, http.StatusBadGateway, out.statusCode)
}

func TestPipelineStumpWinsOverRelay(t *testing.T) {
	rc := newTestRequestContext(t, http.MethodGet, "/a")
	rc.stumpsEnabled = true
	rc.externalHostName = "should-not-be-dialed.invalid:80"
	rc.relay = NewUpstreamRelay(rc.config)

	s, err := NewStump("id1", "teapot")
	require.NoError(t, err)
	require.NoError(t, s.AddRule(NewPathEqualsRule("/a")))
	require.NoError(t, s.SetResponse(&CannedResponse{StatusCode: 418, Body: []byte("teapot")}))
	require.NoError(t, rc.registry.CreateStump(s, nil, nil))

	out, err := requestPipeline.Call(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, servedByStump, out.servedBy)
	assert.Equal(t, 418, out.statusCode)
	assert.Equal(t, []byte("teapot"), out.body)
}

func TestPipelineFirstInsertedStumpWins(t *testing.T) {
	rc := newTestRequestContext(t, http.MethodGet, "/a")
	rc.stumpsEnabled = true

	first, err := NewStump("id1", "first")
	require.NoError(t, err)
	require.NoError(t, first.AddRule(NewPathEqualsRule("/a")))
	require.NoError(t, first.SetResponse(&CannedResponse{StatusCode: 200, Body: []byte("first")}))
	require.NoError(t, rc.registry.CreateStump(first, nil, nil))

	second, err := NewStump("id2", "second")
	require.NoError(t, err)
	require.NoError(t, second.AddRule(NewPathEqualsRule("/a")))
	require.NoError(t, second.SetResponse(&CannedResponse{StatusCode: 201, Body: []byte("second")}))
	require.NoError(t, rc.registry.CreateStump(second, nil, nil))

	out, err := requestPipeline.Call(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), out.body)

	require.NoError(t, rc.registry.DeleteStump("id1"))
	rc2 := newTestRequestContext(t, http.MethodGet, "/a")
	rc2.stumpsEnabled = true
	rc2.registry = rc.registry

	out2, err := requestPipeline.Call(context.Background(), rc2)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), out2.body)
}
