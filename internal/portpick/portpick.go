// SPDX-License-Identifier: GPL-3.0-or-later

// Package portpick chooses a random open TCP port in [7000, 10000] for a
// new proxy instance, avoiding ports already in use (see §6, port policy).
package portpick

import (
	"fmt"
	"math/rand"
	"net"
)

const (
	minPort     = 7000
	maxPort     = 10000
	maxAttempts = 100
	noPortFound = -1
)

// Pick returns a random port in [7000, 10000] that is not currently bound
// by another TCP listener on the host, trying up to 100 random candidates.
// Returns -1 if no free port was found within that budget.
func Pick() int {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := minPort + rand.Intn(maxPort-minPort+1)
		if isFree(candidate) {
			return candidate
		}
	}
	return noPortFound
}

// isFree reports whether port is currently available for binding on
// loopback, by attempting and immediately releasing a listen.
func isFree(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}
