// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCannedResponseCloneIsIndependent(t *testing.T) {
	orig := &CannedResponse{
		StatusCode: 200,
		Headers:    []Header{{Name: "X-A", Value: "1"}},
		Body:       []byte("hello"),
	}
	clone := orig.Clone()

	clone.Headers[0].Value = "2"
	clone.Body[0] = 'H'

	assert.Equal(t, "1", orig.Headers[0].Value)
	assert.Equal(t, byte('h'), orig.Body[0])
}

func TestCannedResponseCloneNil(t *testing.T) {
	var r *CannedResponse
	assert.Nil(t, r.Clone())
}
