// SPDX-License-Identifier: GPL-3.0-or-later

// Package stumps provides a programmable HTTP mocking and recording proxy.
//
// # Core Abstraction
//
// For each configured upstream host, a [*Instance] runs a local HTTP listener
// that, for every incoming request:
//
//  1. tries to match the request against its registered [*Stump] set, in
//     insertion order, and serves the first match's canned response;
//  2. otherwise, if an upstream host is configured, relays the request to it
//     and streams back the real response;
//  3. otherwise serves a fixed fallback status.
//
// Instances are created, started, stopped, and disposed independently through
// a process-wide [*HostRegistry]. Each instance owns a [*StumpRegistry] (the
// named, ordered set of canned responses it can serve) and a [*RecordingBuffer]
// (an append-only log of the request/response pairs it served while traffic
// recording was on).
//
// # Matching
//
// A [Stump] matches a request when every one of its [MatchRule]s returns true
// for that request; rules are evaluated in insertion order and, unlike a
// typical boolean AND, every rule is always consulted — see [Stump.IsMatch]
// for why.
//
// # Observability
//
// The runtime components ([*Instance], [*Listener], [*UpstreamRelay],
// [*HostRegistry]) accept an [SLogger] (compatible with [log/slog]) and an
// [ErrClassifier] through a [*Config], following the same pattern as this
// module's ancestor network-measurement libraries: logging is off by default,
// and errors are tagged with short categorical strings rather than surfaced
// as opaque failures.
//
// # Design Boundaries
//
// This package implements the proxy runtime only: server lifecycle, request
// matching, relay, and recording. Administrative HTTP/UI surfaces, on-disk
// stump serialization, and administrator authentication are the
// responsibility of a caller built on top of [*HostRegistry] and [*Instance];
// see [DataStore] for the persistence seam such a caller plugs into.
package stumps
