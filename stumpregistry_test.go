// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStump(t *testing.T, id, name string) *Stump {
	t.Helper()
	s, err := NewStump(id, name)
	require.NoError(t, err)
	require.NoError(t, s.AddRule(NewMethodEqualsRule("GET")))
	require.NoError(t, s.SetResponse(&CannedResponse{StatusCode: 200}))
	return s
}

func TestStumpRegistryCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	reg := NewStumpRegistry(nil, "server1")
	require.NoError(t, reg.CreateStump(newTestStump(t, "id1", "Greeting"), nil, nil))

	err := reg.CreateStump(newTestStump(t, "id2", "GREETING"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, reg.StumpCount())
}

func TestStumpRegistryFindAndDelete(t *testing.T) {
	reg := NewStumpRegistry(nil, "server1")
	require.NoError(t, reg.CreateStump(newTestStump(t, "id1", "one"), nil, nil))

	found, err := reg.FindStump("id1")
	require.NoError(t, err)
	assert.Equal(t, "id1", found.ID())

	require.NoError(t, reg.DeleteStump("id1"))
	_, err = reg.FindStump("id1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, reg.DeleteStump("id1"), ErrNotFound)
}

func TestStumpRegistryStumpNameExists(t *testing.T) {
	reg := NewStumpRegistry(nil, "server1")
	require.NoError(t, reg.CreateStump(newTestStump(t, "id1", "Greeting"), nil, nil))

	assert.True(t, reg.StumpNameExists("greeting"))
	assert.True(t, reg.StumpNameExists("GREETING"))
	assert.False(t, reg.StumpNameExists("farewell"))
}

func TestStumpRegistryFindAllContractsSnapshotStable(t *testing.T) {
	reg := NewStumpRegistry(nil, "server1")
	require.NoError(t, reg.CreateStump(newTestStump(t, "id1", "one"), nil, nil))

	snap := reg.FindAllContracts()
	require.NoError(t, reg.CreateStump(newTestStump(t, "id2", "two"), nil, nil))

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, reg.StumpCount())
}

func TestStumpRegistryFindAllContractsInsertionOrder(t *testing.T) {
	reg := NewStumpRegistry(nil, "server1")
	require.NoError(t, reg.CreateStump(newTestStump(t, "id1", "one"), nil, nil))
	require.NoError(t, reg.CreateStump(newTestStump(t, "id2", "two"), nil, nil))

	all := reg.FindAllContracts()
	require.Len(t, all, 2)
	assert.Equal(t, "id1", all[0].ID())
	assert.Equal(t, "id2", all[1].ID())
}
