// SPDX-License-Identifier: GPL-3.0-or-later

package stumps

import "context"

// Func is a generic operation that accepts an input and returns a result.
//
// Func instances can be composed using [Compose2] and [Compose3] to create
// type-safe pipelines where the output of one operation flows to the input of
// the next. The request pipeline (see pipeline.go) is built this way: each
// stage is a Func from a pipeline context to the next one, and [Compose3]
// chains stump-match, upstream-relay, and fallback into a single operation.
//
// Resource cleanup contract: when a Func receives a closeable resource as
// input and returns an error, it is responsible for closing that resource
// before returning, so that composed pipelines do not leak resources on
// partial failure.
type Func[A, B any] interface {
	Call(ctx context.Context, input A) (B, error)
}

// FuncAdapter wraps a function as a [Func] implementation.
//
// Use this to create ad-hoc [Func] instances from closures when you need
// custom behavior that doesn't fit the existing primitives.
type FuncAdapter[A, B any] func(ctx context.Context, input A) (B, error)

// Call implements [Func].
func (f FuncAdapter[A, B]) Call(ctx context.Context, input A) (B, error) {
	return f(ctx, input)
}
