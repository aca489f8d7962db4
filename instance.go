// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Instance mocks one upstream host: a [Listener] + [StumpRegistry] +
// [RecordingBuffer] + counters, composed per §4.7.
type Instance struct {
	id     string
	config *Config

	listener *Listener
	registry *StumpRegistry
	recorder *RecordingBuffer
	relay    *UpstreamRelay
	store    DataStore

	autoStart bool

	mu                         sync.Mutex
	externalHostName           string
	useSecureTransportUpstream bool
	stumpsEnabled              bool
	recordTraffic              bool
	recordingBehavior          RecordingBehavior
	fallbackResponse           FallbackResponse
	savedStumpsEnabled         *bool

	disposeOnce sync.Once

	totalRequestsServed     atomic.Int64
	requestsServedWithStump atomic.Int64
	requestsServedWithProxy atomic.Int64
}

// InstanceOptions configures a new [Instance]. Zero values are legal:
// ExternalHostName empty means the relay stage is skipped (see §3); Port
// zero is only useful for tests that never call Start.
type InstanceOptions struct {
	ID                         string
	ExternalHostName           string
	UseSecureTransportUpstream bool
	ListeningPort              int
	AutoStart                  bool
	StumpsEnabled              bool
	RecordTraffic              bool
	RecordingBehavior          RecordingBehavior
	FallbackResponse           FallbackResponse
	Store                      DataStore
}

// NewInstance returns a new, stopped [*Instance]. If opts.ID is empty, one
// is generated via [NewInstanceID]. If cfg is nil, [NewConfig] defaults are
// used.
func NewInstance(opts InstanceOptions, cfg *Config) *Instance {
	if cfg == nil {
		cfg = NewConfig()
	}
	id := opts.ID
	if id == "" {
		id = NewInstanceID()
	}

	inst := &Instance{
		id:                         id,
		config:                     cfg,
		registry:                   NewStumpRegistry(opts.Store, id),
		recorder:                   NewRecordingBuffer(),
		relay:                      NewUpstreamRelay(cfg),
		store:                      opts.Store,
		externalHostName:           opts.ExternalHostName,
		useSecureTransportUpstream: opts.UseSecureTransportUpstream,
		stumpsEnabled:              opts.StumpsEnabled,
		recordTraffic:              opts.RecordTraffic,
		recordingBehavior:          opts.RecordingBehavior,
		fallbackResponse:           opts.FallbackResponse,
		autoStart:                  opts.AutoStart,
	}
	inst.listener = NewListener(opts.ListeningPort, http.HandlerFunc(inst.serveHTTP), cfg)

	if inst.recordTraffic && inst.recordingBehavior == DisableStumpsWhileRecording {
		saved := inst.stumpsEnabled
		inst.savedStumpsEnabled = &saved
		inst.stumpsEnabled = false
	}

	return inst
}

// ID returns the instance's identifier.
func (i *Instance) ID() string {
	return i.id
}

// AutoStart reports whether [*HostRegistry.StartAll] should start this
// instance.
func (i *Instance) AutoStart() bool {
	return i.autoStart
}

// Start starts the listener. Tolerates being called when already running.
func (i *Instance) Start() error {
	return i.listener.Start()
}

// Shutdown stops the listener. Tolerates being called when already stopped.
func (i *Instance) Shutdown() error {
	return i.listener.Shutdown()
}

// Dispose shuts down if running, disposes the listener, and releases the
// instance's synchronisation primitives. Idempotent (see §4.7, §8 invariant
// 9).
func (i *Instance) Dispose() error {
	var err error
	i.disposeOnce.Do(func() {
		err = i.listener.Dispose()
	})
	return err
}

// CreateStump delegates to the instance's [StumpRegistry].
func (i *Instance) CreateStump(stump *Stump, requestBody, responseBody []byte) error {
	return i.registry.CreateStump(stump, requestBody, responseBody)
}

// DeleteStump delegates to the instance's [StumpRegistry].
func (i *Instance) DeleteStump(id string) error {
	return i.registry.DeleteStump(id)
}

// FindStump delegates to the instance's [StumpRegistry].
func (i *Instance) FindStump(id string) (*Stump, error) {
	return i.registry.FindStump(id)
}

// FindAllContracts delegates to the instance's [StumpRegistry].
func (i *Instance) FindAllContracts() []*Stump {
	return i.registry.FindAllContracts()
}

// StumpNameExists delegates to the instance's [StumpRegistry].
func (i *Instance) StumpNameExists(name string) bool {
	return i.registry.StumpNameExists(name)
}

// StumpCount delegates to the instance's [StumpRegistry].
func (i *Instance) StumpCount() int {
	return i.registry.StumpCount()
}

// Recordings returns a stable snapshot of the instance's recorded traffic.
func (i *Instance) Recordings() []*RecordedContext {
	return i.recorder.FindAll()
}

// ClearRecordings truncates the instance's recording buffer.
func (i *Instance) ClearRecordings() {
	i.recorder.Clear()
}

// ExternalHostName returns the configured upstream host name, or "" if the
// relay stage is disabled for this instance.
func (i *Instance) ExternalHostName() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.externalHostName
}

// SetExternalHostName sets the upstream host name the relay stage forwards
// to. An empty value disables the relay stage.
func (i *Instance) SetExternalHostName(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.externalHostName = name
}

// UseSecureTransportUpstream reports whether the relay dials the upstream
// over TLS.
func (i *Instance) UseSecureTransportUpstream() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.useSecureTransportUpstream
}

// SetUseSecureTransportUpstream sets whether the relay dials the upstream
// over TLS.
func (i *Instance) SetUseSecureTransportUpstream(secure bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.useSecureTransportUpstream = secure
}

// ListeningPort returns the instance's configured listening port.
func (i *Instance) ListeningPort() int {
	return i.listener.Port()
}

// StumpsEnabled reports whether Stage A (stump matching) runs for this
// instance.
func (i *Instance) StumpsEnabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stumpsEnabled
}

// SetStumpsEnabled sets whether Stage A (stump matching) runs for this
// instance. If recording is currently forcing stumps off (see
// [Instance.SetRecordTraffic]), this call still takes effect immediately;
// the forced-off snapshot is only restored when recording is turned off.
func (i *Instance) SetStumpsEnabled(enabled bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stumpsEnabled = enabled
}

// RecordTraffic reports whether the recording hook is active.
func (i *Instance) RecordTraffic() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.recordTraffic
}

// SetRecordTraffic toggles the recording hook. With RecordingBehavior ==
// DisableStumpsWhileRecording, turning recording on snapshots the current
// StumpsEnabled value and forces it false; turning recording off restores
// the snapshot. Repeated enables/disables are idempotent (see §4.3, §4.7,
// §8 invariant 7).
func (i *Instance) SetRecordTraffic(record bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if record == i.recordTraffic {
		return
	}
	i.recordTraffic = record

	if i.recordingBehavior != DisableStumpsWhileRecording {
		return
	}

	if record {
		if i.savedStumpsEnabled == nil {
			saved := i.stumpsEnabled
			i.savedStumpsEnabled = &saved
		}
		i.stumpsEnabled = false
		return
	}

	if i.savedStumpsEnabled != nil {
		i.stumpsEnabled = *i.savedStumpsEnabled
		i.savedStumpsEnabled = nil
	}
}

// RecordingBehavior returns the instance's recording/stump interaction
// policy.
func (i *Instance) RecordingBehavior() RecordingBehavior {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.recordingBehavior
}

// SetRecordingBehavior sets the instance's recording/stump interaction
// policy.
func (i *Instance) SetRecordingBehavior(behavior RecordingBehavior) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.recordingBehavior = behavior
}

// FallbackResponse returns the status code family Stage C serves.
func (i *Instance) FallbackResponse() FallbackResponse {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.fallbackResponse
}

// SetFallbackResponse sets the status code family Stage C serves.
func (i *Instance) SetFallbackResponse(fallback FallbackResponse) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fallbackResponse = fallback
}

// TotalRequestsServed returns the monotonically increasing count of every
// request the pipeline has fully served.
func (i *Instance) TotalRequestsServed() int64 {
	return i.totalRequestsServed.Load()
}

// RequestsServedWithStump returns the count of requests terminated by
// Stage A.
func (i *Instance) RequestsServedWithStump() int64 {
	return i.requestsServedWithStump.Load()
}

// RequestsServedWithProxy returns the count of requests terminated by
// Stage B.
func (i *Instance) RequestsServedWithProxy() int64 {
	return i.requestsServedWithProxy.Load()
}

// snapshot captures the configuration fields the pipeline needs for one
// request, under the instance's mutex, so that a concurrent configuration
// change mid-request doesn't tear a single request's view of the config
// (see §5, ordering guarantees).
func (i *Instance) snapshot() (stumpsEnabled bool, externalHostName string, useSecure bool, fallback FallbackResponse, recordTraffic bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stumpsEnabled, i.externalHostName, i.useSecureTransportUpstream, i.fallbackResponse, i.recordTraffic
}

// serveHTTP is the [Listener]'s handler: it runs the request pipeline,
// writes the response, updates counters, and appends to the recording
// buffer when enabled (see §4.3, §4.6).
func (i *Instance) serveHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := bufferRequestBody(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	stumpsEnabled, externalHostName, useSecure, fallback, recordTraffic := i.snapshot()

	rc := &requestContext{
		req:                        req,
		stumpsEnabled:              stumpsEnabled,
		externalHostName:           externalHostName,
		useSecureTransportUpstream: useSecure,
		fallbackResponse:           fallback,
		registry:                   i.registry,
		relay:                      i.relay,
		config:                     i.config,
	}

	out, err := requestPipeline.Call(req.Context(), rc)
	if err != nil {
		i.config.Logger.Error("pipeline returned unexpected error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeResponse(w, out)
	i.updateCounters(out.servedBy)

	if recordTraffic {
		i.recorder.Append(buildRecordedContext(req, out, i.config.TimeNow()))
	}
}

func writeResponse(w http.ResponseWriter, rc *requestContext) {
	for _, h := range rc.headers {
		w.Header().Add(h.Name, h.Value)
	}
	if len(rc.body) == 0 {
		w.Header().Set("Content-Length", "0")
	}
	w.WriteHeader(rc.statusCode)
	if len(rc.body) > 0 {
		w.Write(rc.body)
	}
}

func (i *Instance) updateCounters(servedBy servedBy) {
	i.totalRequestsServed.Add(1)
	switch servedBy {
	case servedByStump:
		i.requestsServedWithStump.Add(1)
	case servedByProxy:
		i.requestsServedWithProxy.Add(1)
	}
}

func buildRecordedContext(req *http.Request, rc *requestContext, receivedAt time.Time) *RecordedContext {
	reqIsText, reqIsImage := classifyBodyKind(req.Header.Get("Content-Type"))
	recordedReq := RecordedRequest{
		Method:  req.Method,
		Path:    req.URL.Path,
		Query:   req.URL.RawQuery,
		Headers: headersFromHTTP(req.Header),
		Body:    requestBodyBytes(req),
		IsText:  reqIsText,
		IsImage: reqIsImage,
	}
	recordedResp := RecordedResponse{
		StatusCode:        rc.statusCode,
		StatusDescription: rc.statusDescription,
		Headers:           rc.headers,
		Body:              rc.body,
		IsText:            rc.respIsText,
		IsImage:           rc.respIsImg,
	}
	return NewRecordedContext(recordedReq, recordedResp, receivedAt)
}
