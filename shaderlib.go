// Package shaderlib validates declarative synesthetic shader specifications.
//
// shaderlib is the rules engine behind shader authoring backends: it decides
// whether a ShaderLib document (a library of named reusable GLSL helpers with
// their own uniform and parameter requirements) or a standalone v0.4 shader
// block is internally consistent, and computes the effective input
// specification for a helper by merging library-wide base requirements with
// helper-local ones.
//
// The package is a facade over the concern packages:
//   - uniform — shared type system and the reserved uniform registry
//   - library — ShaderLib v1 model, collision rules, merge engine, template check
//   - dsl — fail-fast validation of standalone v0.4 shader blocks
//
// Example usage:
//
//	lib, err := shaderlib.ParseLibrary(data)
//	if err != nil {
//	    var errs library.ErrorList
//	    if errors.As(err, &errs) {
//	        for _, e := range errs {
//	            fmt.Printf("%s: %s (%s)\n", e.Path, e.Message, e.Code)
//	        }
//	    }
//	    return err
//	}
//	eff, err := shaderlib.EffectiveInputs(lib, "sdHexagon")
//
// All operations are pure functions over immutable inputs; every call may
// run concurrently with any other.
package shaderlib

import (
	"fmt"

	"github.com/gogpu/shaderlib/dsl"
	"github.com/gogpu/shaderlib/library"
)

// Document schema versions understood by this package.
const (
	// LibraryVersion is the supported ShaderLib document version.
	LibraryVersion = "1"
	// DSLVersion is the supported standalone shader block version.
	DSLVersion = "0.4"
)

// ParseLibrary decodes and validates a ShaderLib v1 JSON document.
//
// On failure the returned error is a library.ErrorList carrying every
// violation found — validation does not stop at the first problem — each
// with a document path and a stable machine-readable code.
func ParseLibrary(data []byte) (*library.Library, error) {
	return library.Parse(data)
}

// ValidateLibrary validates an already-decoded ShaderLib document.
//
// This is the entry point for callers that decode transport payloads
// themselves. The returned ErrorList is nil when the document is valid.
func ValidateLibrary(doc *library.Document) (*library.Library, library.ErrorList) {
	return library.Validate(doc)
}

// EffectiveInputs computes the merged input specification for one helper:
// the library's reserved uniforms and base parameters followed by the
// helper's extra requirements, order-preserving and deduplicated.
//
// Fails with code HELPER_NOT_FOUND for an unknown helper and with
// COLLISION_BASE_PARAMETER when a helper parameter repeats a base parameter
// identifier.
func EffectiveInputs(lib *library.Library, helperName string) (*library.EffectiveInputs, error) {
	eff, err := lib.EffectiveInputs(helperName)
	if err != nil {
		return nil, fmt.Errorf("effective inputs for %q: %w", helperName, err)
	}
	return eff, nil
}

// CheckTemplate reports whether the library's fragment template appears to
// demonstrate the named helper. The result is advisory: a substring
// heuristic over comment-stripped text, never a hard failure.
func CheckTemplate(lib *library.Library, helperName string) library.TemplateReport {
	return lib.CheckTemplate(helperName)
}

// ValidateShaderBlock validates a standalone v0.4 shader descriptor.
//
// Unlike library validation this is fail-fast: the first violation is
// returned as a plain descriptive error.
func ValidateShaderBlock(block map[string]any) error {
	return dsl.ValidateShaderBlock(block)
}

// ValidateComputeShaderBlock validates a compute-only shader block: uniform
// declarations and textual usage must agree.
func ValidateComputeShaderBlock(block map[string]any) error {
	return dsl.ValidateComputeShaderBlock(block)
}
