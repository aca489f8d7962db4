// SPDX-License-Identifier: GPL-3.0-or-later

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/errclass.go
//

// Package errclass classifies low-level network errors into short,
// categorical strings (e.g. "ETIMEDOUT", "ECONNREFUSED") suitable for
// structured log fields and metrics, the way the rest of this module's
// ancestor libraries classify socket errors for correlation across log
// lines rather than propagating raw syscall values to callers.
package errclass

import (
	"context"
	"errors"
	"net"
)

// Exported classification labels. These are the values [Classify] returns;
// callers should match against them rather than against platform-specific
// errno values.
const (
	EADDRNOTAVAIL   = "EADDRNOTAVAIL"
	EADDRINUSE      = "EADDRINUSE"
	ECONNABORTED    = "ECONNABORTED"
	ECONNREFUSED    = "ECONNREFUSED"
	ECONNRESET      = "ECONNRESET"
	EHOSTUNREACH    = "EHOSTUNREACH"
	EINVAL          = "EINVAL"
	EINTR           = "EINTR"
	ENETDOWN        = "ENETDOWN"
	ENETUNREACH     = "ENETUNREACH"
	ENOBUFS         = "ENOBUFS"
	ENOTCONN        = "ENOTCONN"
	EPROTONOSUPPORT = "EPROTONOSUPPORT"
	ETIMEDOUT       = "ETIMEDOUT"
	EGENERIC        = "EGENERIC"
)

// Classify maps err to a short categorical string. A nil error classifies
// to the empty string. Errors that don't match a known case classify to
// [EGENERIC] rather than being left unclassified, so callers can always log
// a non-empty field for a non-nil error.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ETIMEDOUT
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ETIMEDOUT
	}
	switch {
	case errors.Is(err, errEADDRNOTAVAIL):
		return EADDRNOTAVAIL
	case errors.Is(err, errEADDRINUSE):
		return EADDRINUSE
	case errors.Is(err, errECONNABORTED):
		return ECONNABORTED
	case errors.Is(err, errECONNREFUSED):
		return ECONNREFUSED
	case errors.Is(err, errECONNRESET):
		return ECONNRESET
	case errors.Is(err, errEHOSTUNREACH):
		return EHOSTUNREACH
	case errors.Is(err, errEINVAL):
		return EINVAL
	case errors.Is(err, errEINTR):
		return EINTR
	case errors.Is(err, errENETDOWN):
		return ENETDOWN
	case errors.Is(err, errENETUNREACH):
		return ENETUNREACH
	case errors.Is(err, errENOBUFS):
		return ENOBUFS
	case errors.Is(err, errENOTCONN):
		return ENOTCONN
	case errors.Is(err, errEPROTONOSUPPORT):
		return EPROTONOSUPPORT
	case errors.Is(err, errETIMEDOUT):
		return ETIMEDOUT
	default:
		return EGENERIC
	}
}
