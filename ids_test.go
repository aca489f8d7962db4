// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStumpID(t *testing.T) {
	a := NewStumpID()
	b := NewStumpID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNewInstanceID(t *testing.T) {
	assert.NotEmpty(t, NewInstanceID())
}
