// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "github.com/google/uuid"

// NewStumpID returns a UUIDv7 string suitable as a [StumpId].
//
// UUIDv7 is time-ordered, which keeps stump ids roughly sorted by creation
// time in logs and makes collisions astronomically unlikely without a
// coordinating authority.
//
// This function panics if the system random number generator fails, which
// should only happen under extraordinary circumstances.
func NewStumpID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id.String()
}

// NewInstanceID returns a UUIDv7 string suitable as an instance id.
func NewInstanceID() string {
	return NewStumpID()
}
