// SPDX-License-Identifier: GPL-3.0-or-later

package portpick

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickReturnsPortInRange(t *testing.T) {
	port := Pick()
	require.NotEqual(t, noPortFound, port)
	assert.GreaterOrEqual(t, port, minPort)
	assert.LessOrEqual(t, port, maxPort)
}

func TestIsFreeReportsFalseForBoundPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:7777")
	require.NoError(t, err)
	defer ln.Close()

	assert.False(t, isFree(7777))
}
