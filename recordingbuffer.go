// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "sync"

// RecordingBuffer is an ordered, append-only log of [RecordedContext]
// values. Appends are serialised; FindAll returns a stable snapshot that is
// unaffected by later appends or a later Clear (see §4.5, invariant 8).
type RecordingBuffer struct {
	mu      sync.Mutex
	entries []*RecordedContext
}

// NewRecordingBuffer returns an empty RecordingBuffer.
func NewRecordingBuffer() *RecordingBuffer {
	return &RecordingBuffer{}
}

// Append adds ctx to the end of the buffer. Nil contexts are ignored.
func (b *RecordingBuffer) Append(ctx *RecordedContext) {
	if ctx == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, ctx)
}

// FindAll returns a snapshot of the buffer's contents in arrival order.
// Mutating the returned slice does not affect the buffer.
func (b *RecordingBuffer) FindAll() []*RecordedContext {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*RecordedContext, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries currently in the buffer.
func (b *RecordingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear truncates the buffer to empty.
func (b *RecordingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}
