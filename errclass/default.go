// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !unix && !windows

package errclass

import "errors"

var (
	errEADDRNOTAVAIL   = errors.New("address not available")
	errEADDRINUSE      = errors.New("address in use")
	errECONNABORTED    = errors.New("connection aborted")
	errECONNREFUSED    = errors.New("connection refused")
	errECONNRESET      = errors.New("connection reset")
	errEHOSTUNREACH    = errors.New("host unreachable")
	errEINVAL          = errors.New("invalid argument")
	errEINTR           = errors.New("interrupted")
	errENETDOWN        = errors.New("network down")
	errENETUNREACH     = errors.New("network unreachable")
	errENOBUFS         = errors.New("no buffer space")
	errENOTCONN        = errors.New("not connected")
	errEPROTONOSUPPORT = errors.New("protocol not supported")
	errETIMEDOUT       = errors.New("timed out")
)
