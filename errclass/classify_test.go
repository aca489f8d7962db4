// SPDX-License-Identifier: GPL-3.0-or-later

package errclass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, ETIMEDOUT, Classify(context.DeadlineExceeded))
	assert.Equal(t, EGENERIC, Classify(errors.New("some unclassified error")))
}
