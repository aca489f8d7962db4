// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// bodyBytesKey is the context key under which the pipeline stashes the
// fully-read request body so that match rules (see rule_body.go) and the
// recording hook can inspect it without each re-reading (and thereby
// exhausting) req.Body.
type bodyBytesKey struct{}

// bufferRequestBody reads req.Body fully, stashes the bytes on req's context
// so repeated [MatchRule] evaluations and the recording hook can see them,
// and rewinds req.Body to a fresh reader over the same bytes so the upstream
// relay (see relay.go) can still forward it.
//
// Called once per request by [Instance.serveHTTP] (see instance.go), before
// the pipeline runs and any stump is consulted.
func bufferRequestBody(req *http.Request) (*http.Request, error) {
	if req == nil || req.Body == nil {
		return req, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return req, err
	}
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	ctx := context.WithValue(req.Context(), bodyBytesKey{}, data)
	return req.WithContext(ctx), nil
}

// requestBodyBytes returns the bytes stashed by [bufferRequestBody], or nil
// if the request was never buffered (e.g. it has no body).
func requestBodyBytes(req *http.Request) []byte {
	if req == nil {
		return nil
	}
	data, _ := req.Context().Value(bodyBytesKey{}).([]byte)
	return data
}
