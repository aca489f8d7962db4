// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"fmt"
	"strings"
	"sync"
)

// StumpRegistry is the per-instance directory of [Stump] values, keyed by
// id, with a case-insensitive name-uniqueness constraint and stable
// insertion-order iteration (see §4.2).
//
// Reads (FindStump, FindAllContracts, StumpNameExists, StumpCount) acquire
// only the read lock; CreateStump and DeleteStump acquire the write lock.
// Per §5, lock acquisition is never recursive: no method here calls another
// method that acquires the same mutex.
type StumpRegistry struct {
	mu      sync.RWMutex
	byID    map[string]*Stump
	order   []*Stump
	store   DataStore
	storeID string
}

// NewStumpRegistry returns an empty StumpRegistry. store may be nil, in
// which case stump persistence is skipped (suitable for tests); serverID
// identifies the owning instance to the store.
func NewStumpRegistry(store DataStore, serverID string) *StumpRegistry {
	return &StumpRegistry{
		byID:    make(map[string]*Stump),
		store:   store,
		storeID: serverID,
	}
}

// CreateStump registers stump, assigning it an id via [NewStumpID] if it
// doesn't already have one, and persists it via the configured [DataStore].
// Fails with [ErrInvalidArgument] if stump is nil or its name duplicates an
// existing stump's name under case-insensitive comparison.
func (r *StumpRegistry) CreateStump(stump *Stump, requestBody, responseBody []byte) error {
	if stump == nil {
		return fmt.Errorf("%w: stump must not be nil", ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.order {
		if strings.EqualFold(existing.name, stump.name) {
			return fmt.Errorf("%w: stump name %q already in use", ErrInvalidArgument, stump.name)
		}
	}

	if strings.TrimSpace(stump.id) == "" {
		stump.id = NewStumpID()
	}

	if r.store != nil {
		if err := r.store.StumpCreate(r.storeID, stump, requestBody, responseBody); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}
	}

	r.byID[stump.id] = stump
	r.order = append(r.order, stump)
	return nil
}

// DeleteStump removes the stump identified by id from the registry and
// persists the removal. Fails with [ErrNotFound] if no stump with that id
// is registered.
func (r *StumpRegistry) DeleteStump(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: stump id %q", ErrNotFound, id)
	}

	if r.store != nil {
		if err := r.store.StumpDelete(r.storeID, id); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
		}
	}

	delete(r.byID, id)
	for i, s := range r.order {
		if s.id == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindStump returns the stump identified by id, or [ErrNotFound].
func (r *StumpRegistry) FindStump(id string) (*Stump, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: stump id %q", ErrNotFound, id)
	}
	return s, nil
}

// FindAllContracts returns a stable snapshot of all registered stumps in
// insertion order. Subsequent CreateStump/DeleteStump calls do not affect
// the returned slice (see §8, invariant 8).
func (r *StumpRegistry) FindAllContracts() []*Stump {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Stump, len(r.order))
	copy(out, r.order)
	return out
}

// StumpNameExists reports whether name is already in use by a registered
// stump, compared case-insensitively.
func (r *StumpRegistry) StumpNameExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.order {
		if strings.EqualFold(s.name, name) {
			return true
		}
	}
	return false
}

// StumpCount returns the number of registered stumps.
func (r *StumpRegistry) StumpCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
