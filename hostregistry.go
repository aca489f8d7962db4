// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// HostRegistry is the process-wide directory of [*Instance] values, keyed
// by instance id under case-insensitive comparison (see §4.8).
type HostRegistry struct {
	config *Config
	store  DataStore

	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewHostRegistry returns an empty HostRegistry. store is the persistence
// collaborator used by Load to read previously persisted instance
// descriptors; it may be nil if Load is never called. If cfg is nil,
// [NewConfig] defaults are used.
func NewHostRegistry(store DataStore, cfg *Config) *HostRegistry {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &HostRegistry{
		config:    cfg,
		store:     store,
		instances: make(map[string]*Instance),
	}
}

func (h *HostRegistry) key(id string) string {
	return strings.ToLower(id)
}

// Create registers a new [*Instance] for externalHostName/port and returns
// it. Fails with [ErrInvalidArgument] if hostName is empty or port is
// outside [1, 65535] (see §4.8, validation).
func (h *HostRegistry) Create(hostName string, port int, useSecureTransport, autoStart bool) (*Instance, error) {
	if strings.TrimSpace(hostName) == "" {
		return nil, fmt.Errorf("%w: host name must not be empty", ErrInvalidArgument)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range [1, 65535]", ErrInvalidArgument, port)
	}

	inst := NewInstance(InstanceOptions{
		ExternalHostName: hostName,
		ListeningPort:    port,
		AutoStart:        autoStart,
		Store:            h.store,
	}, h.config)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances[h.key(inst.ID())] = inst

	if h.store != nil {
		descriptor := &ProxyServerDescriptor{
			InstanceID:                 inst.ID(),
			ExternalHostName:           hostName,
			UseSecureTransportUpstream: useSecureTransport,
			ListeningPort:              port,
			AutoStart:                  autoStart,
		}
		if err := h.store.ProxyServerCreate(descriptor); err != nil {
			delete(h.instances, h.key(inst.ID()))
			return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}
	}

	inst.SetUseSecureTransportUpstream(useSecureTransport)
	return inst, nil
}

// Delete disposes and removes the instance identified by id. Fails with
// [ErrNotFound] if no such instance is registered.
func (h *HostRegistry) Delete(id string) error {
	h.mu.Lock()
	inst, ok := h.instances[h.key(id)]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: instance id %q", ErrNotFound, id)
	}
	delete(h.instances, h.key(id))
	h.mu.Unlock()

	if h.store != nil {
		if err := h.store.ProxyServerDelete(inst.ID()); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}
	}
	return inst.Dispose()
}

// Find returns the instance identified by id, or [ErrNotFound].
func (h *HostRegistry) Find(id string) (*Instance, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	inst, ok := h.instances[h.key(id)]
	if !ok {
		return nil, fmt.Errorf("%w: instance id %q", ErrNotFound, id)
	}
	return inst, nil
}

// FindAll returns a snapshot of all registered instances.
func (h *HostRegistry) FindAll() []*Instance {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Instance, 0, len(h.instances))
	for _, inst := range h.instances {
		out = append(out, inst)
	}
	return out
}

// Start starts the instance identified by id.
func (h *HostRegistry) Start(id string) error {
	inst, err := h.Find(id)
	if err != nil {
		return err
	}
	return inst.Start()
}

// Stop stops the instance identified by id.
func (h *HostRegistry) Stop(id string) error {
	inst, err := h.Find(id)
	if err != nil {
		return err
	}
	return inst.Shutdown()
}

// StartAll concurrently starts every registered instance marked AutoStart,
// returning the first error encountered (if any) after all attempts
// complete.
func (h *HostRegistry) StartAll() error {
	var g errgroup.Group
	for _, inst := range h.FindAll() {
		if !inst.AutoStart() {
			continue
		}
		inst := inst
		g.Go(func() error {
			return inst.Start()
		})
	}
	return g.Wait()
}

// StopAll concurrently shuts down every registered instance, returning the
// first error encountered (if any) after all attempts complete.
func (h *HostRegistry) StopAll() error {
	var g errgroup.Group
	for _, inst := range h.FindAll() {
		inst := inst
		g.Go(func() error {
			return inst.Shutdown()
		})
	}
	return g.Wait()
}

// Register adds an already-constructed instance to the registry, keyed by
// its id. Used by Load, and available to callers that build instances from
// their own descriptor source rather than through Create.
func (h *HostRegistry) Register(inst *Instance) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.instances[h.key(inst.ID())] = inst
}

// Load reads previously persisted instance descriptors from the configured
// [DataStore] and registers them without starting them. Callers that want
// auto-started instances running should call StartAll afterwards.
func (h *HostRegistry) Load() error {
	if h.store == nil {
		return nil
	}
	descriptors, err := h.store.ProxyServerFindAll()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	for _, d := range descriptors {
		inst := NewInstance(InstanceOptions{
			ID:                         d.InstanceID,
			ExternalHostName:           d.ExternalHostName,
			UseSecureTransportUpstream: d.UseSecureTransportUpstream,
			ListeningPort:              d.ListeningPort,
			AutoStart:                  d.AutoStart,
			StumpsEnabled:              d.StumpsEnabled,
			RecordTraffic:              d.RecordTraffic,
			RecordingBehavior:          d.RecordingBehavior,
			FallbackResponse:           d.FallbackResponse,
			Store:                      h.store,
		}, h.config)
		h.Register(inst)
	}
	return nil
}
