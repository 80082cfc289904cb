// Package dsl validates standalone shader descriptor blocks (DSL v0.4).
//
// Unlike the library model, a shader block is a flat document validated in a
// single fail-fast pass: the first violation is returned as a plain error
// with a descriptive message and no machine code. The block is consumed as a
// pass/fail gate, not as a field-level form surface.
//
// Rules cover the exact top-level key set, per-uniform type/size/stage/
// precision and default arity, the reserved uniform cross-check against the
// registry in package uniform, and parameter-to-uniform wiring: every
// controllable uniform must be bound by exactly one input parameter.
package dsl
