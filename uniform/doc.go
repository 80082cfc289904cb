// Package uniform defines the shared uniform type system for shaderlib.
//
// Both validation paths — the ShaderLib library model and the v0.4 shader
// block validator — resolve stages, GLSL base types and the reserved uniform
// registry through this package, so the two can never disagree about what a
// type means or which uniforms the runtime owns.
//
// # Components
//
//   - Stage: shader stage enumeration (fragment, vertex, any, compute)
//   - BaseType: GLSL base types (scalars, vectors, matrices, sampler2D)
//   - Type: a BaseType plus an array flag, parsed from strings like "vec3[]"
//   - Reserved registry: uniforms injected by the runtime (u_time, ...) with
//     their required type and stage
package uniform
