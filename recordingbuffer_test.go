// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordingBufferAppendAndFindAll(t *testing.T) {
	buf := NewRecordingBuffer()
	assert.Equal(t, 0, buf.Len())

	c1 := NewRecordedContext(RecordedRequest{Method: "GET", Path: "/a"}, RecordedResponse{StatusCode: 200}, time.Unix(1, 0))
	c2 := NewRecordedContext(RecordedRequest{Method: "GET", Path: "/b"}, RecordedResponse{StatusCode: 404}, time.Unix(2, 0))

	buf.Append(c1)
	buf.Append(c2)

	all := buf.FindAll()
	assert.Len(t, all, 2)
	assert.Equal(t, "/a", all[0].Request.Path)
	assert.Equal(t, "/b", all[1].Request.Path)
}

func TestRecordingBufferAppendNilIgnored(t *testing.T) {
	buf := NewRecordingBuffer()
	buf.Append(nil)
	assert.Equal(t, 0, buf.Len())
}

func TestRecordingBufferSnapshotStable(t *testing.T) {
	buf := NewRecordingBuffer()
	buf.Append(NewRecordedContext(RecordedRequest{Path: "/a"}, RecordedResponse{}, time.Now()))

	snap := buf.FindAll()
	buf.Append(NewRecordedContext(RecordedRequest{Path: "/b"}, RecordedResponse{}, time.Now()))

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, buf.Len())
}

func TestRecordingBufferClear(t *testing.T) {
	buf := NewRecordingBuffer()
	buf.Append(NewRecordedContext(RecordedRequest{Path: "/a"}, RecordedResponse{}, time.Now()))
	assert.Equal(t, 1, buf.Len())

	buf.Clear()
	assert.Equal(t, 0, buf.Len())
	assert.Empty(t, buf.FindAll())
}
