// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"strings"
	"sync"
)

// ProxyServerDescriptor is the persisted shape of one instance's
// configuration, as read from and written to a [DataStore]. It mirrors the
// instance configuration data model (see §3) but carries no live state
// (listener, counters, registry).
type ProxyServerDescriptor struct {
	InstanceID                 string
	ExternalHostName           string
	UseSecureTransportUpstream bool
	ListeningPort              int
	AutoStart                  bool
	StumpsEnabled              bool
	RecordTraffic              bool
	RecordingBehavior          RecordingBehavior
	FallbackResponse           FallbackResponse
}

// DataStore is the persistence collaborator the core depends on (see §6).
// Apart from the in-memory [MemoryDataStore], any on-disk or
// database-backed representation is external to this package;
// implementations simply need to satisfy this interface.
type DataStore interface {
	ProxyServerFind(id string) (*ProxyServerDescriptor, error)
	ProxyServerFindAll() ([]*ProxyServerDescriptor, error)
	ProxyServerCreate(entity *ProxyServerDescriptor) error
	ProxyServerDelete(id string) error

	StumpFindAll(serverID string) ([]*Stump, error)
	StumpCreate(serverID string, entity *Stump, requestBody, responseBody []byte) error
	StumpDelete(serverID, stumpID string) error
}

// MemoryDataStore is an in-memory [DataStore] implementation, used by tests
// and by the CLI bootstrap in cmd/stumpsd. It keeps stumps grouped by the
// server id they were created under. It is not substituted automatically:
// a component given a nil DataStore skips persistence instead.
type MemoryDataStore struct {
	mu      sync.Mutex
	servers map[string]*ProxyServerDescriptor
	stumps  map[string][]*Stump
}

var _ DataStore = &MemoryDataStore{}

// NewMemoryDataStore returns an empty MemoryDataStore.
func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		servers: make(map[string]*ProxyServerDescriptor),
		stumps:  make(map[string][]*Stump),
	}
}

// ProxyServerFind implements [DataStore].
func (m *MemoryDataStore) ProxyServerFind(id string) (*ProxyServerDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.servers[id]
	if !ok {
		return nil, fmt.Errorf("%w: instance id %q", ErrNotFound, id)
	}
	return d, nil
}

// ProxyServerFindAll implements [DataStore].
func (m *MemoryDataStore) ProxyServerFindAll() ([]*ProxyServerDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ProxyServerDescriptor, 0, len(m.servers))
	for _, d := range m.servers {
		out = append(out, d)
	}
	return out, nil
}

// ProxyServerCreate implements [DataStore].
func (m *MemoryDataStore) ProxyServerCreate(entity *ProxyServerDescriptor) error {
	if entity == nil || strings.TrimSpace(entity.InstanceID) == "" {
		return fmt.Errorf("%w: entity and instance id must be non-empty", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers[entity.InstanceID] = entity
	return nil
}

// ProxyServerDelete implements [DataStore].
func (m *MemoryDataStore) ProxyServerDelete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.servers[id]; !ok {
		return fmt.Errorf("%w: instance id %q", ErrNotFound, id)
	}
	delete(m.servers, id)
	delete(m.stumps, id)
	return nil
}

// StumpFindAll implements [DataStore].
func (m *MemoryDataStore) StumpFindAll(serverID string) ([]*Stump, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Stump, len(m.stumps[serverID]))
	copy(out, m.stumps[serverID])
	return out, nil
}

// StumpCreate implements [DataStore]. requestBody and responseBody are
// accepted for interface compatibility with stump-contract conversion
// tooling outside this package's scope; the in-memory store does not
// persist them separately from the Stump's own CannedResponse.
func (m *MemoryDataStore) StumpCreate(serverID string, entity *Stump, requestBody, responseBody []byte) error {
	if entity == nil {
		return fmt.Errorf("%w: stump must not be nil", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stumps[serverID] = append(m.stumps[serverID], entity)
	return nil
}

// StumpDelete implements [DataStore].
func (m *MemoryDataStore) StumpDelete(serverID, stumpID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.stumps[serverID]
	for i, s := range list {
		if s.ID() == stumpID {
			m.stumps[serverID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: stump id %q", ErrNotFound, stumpID)
}
