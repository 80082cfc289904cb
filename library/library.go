package library

import (
	"fmt"

	"github.com/gogpu/shaderlib/uniform"
)

// Names of the two positional controls every library must bind.
const (
	ParamPositionX = "u_px"
	ParamPositionY = "u_py"
)

// DefaultReservedUniforms returns the reserved uniform list a document gets
// when it does not declare its own: the registry uniforms followed by the
// positional controls.
func DefaultReservedUniforms() []string {
	return append(uniform.ReservedNames(), ParamPositionX, ParamPositionY)
}

// ParamType is the scalar control type of an input parameter.
type ParamType uint8

const (
	ParamFloat ParamType = iota
	ParamInt
	ParamBool
)

// String returns the document spelling of the type.
func (t ParamType) String() string {
	switch t {
	case ParamFloat:
		return "float"
	case ParamInt:
		return "int"
	case ParamBool:
		return "bool"
	}
	return fmt.Sprintf("ParamType(%d)", uint8(t))
}

// ParseParamType parses a document parameter type string.
func ParseParamType(s string) (ParamType, error) {
	switch s {
	case "float":
		return ParamFloat, nil
	case "int":
		return ParamInt, nil
	case "bool":
		return ParamBool, nil
	}
	return 0, fmt.Errorf("invalid parameter type %q", s)
}

// InputParam is one validated control binding. Instances are only produced
// by validation, so an InputParam that exists is internally consistent for
// its type-directed rules. Collisions with sibling parameters are checked
// one level up, by the library collision pass and the merge engine.
type InputParam struct {
	Name      string // display label
	Parameter string // binding target identifier
	Path      string // struct-field path in the runtime patch
	Type      ParamType

	// Default is float64 for float/int parameters and bool for bool ones.
	Default       any
	Min           *float64
	Max           *float64
	Step          *float64
	SmoothingTime *float64
}

// Requires lists a helper's extra uniform and parameter requirements.
type Requires struct {
	Uniforms []string
	Params   []InputParam
}

// Helper is a named reusable GLSL snippet scoped to one shader stage.
type Helper struct {
	GLSL     string
	Stage    uniform.Stage
	Requires Requires
}

// Templates holds the optional demonstration material of a library.
type Templates struct {
	FragmentShader  string
	InputParameters []InputParam
}

// Library is a validated ShaderLib v1 document. Values are constructed by
// Validate or Parse only, and are treated as immutable afterwards; every
// method is a pure read safe for concurrent use.
type Library struct {
	Name             string
	Version          string
	ReservedUniforms []string
	BaseParams       []InputParam
	Helpers          map[string]Helper
	Templates        *Templates
}

// Document is the raw JSON shape of a ShaderLib v1 document, before
// validation. Optional numeric fields are pointers so that presence is
// observable — the bool rules reject fields that merely exist.
type Document struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`

	// ReservedUniforms defaults to DefaultReservedUniforms when nil.
	ReservedUniforms        []string                  `json:"reservedUniforms,omitempty"`
	BaseInputParametersSpec []ParamDocument           `json:"baseInputParametersSpec"`
	Helpers                 map[string]HelperDocument `json:"helpers"`
	Templates               *TemplatesDocument        `json:"templates,omitempty"`
}

// ParamDocument is the raw shape of one input parameter.
type ParamDocument struct {
	Name          *string  `json:"name"`
	Parameter     *string  `json:"parameter"`
	Path          *string  `json:"path"`
	Type          *string  `json:"type"`
	Default       any      `json:"default"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Step          *float64 `json:"step,omitempty"`
	SmoothingTime *float64 `json:"smoothingTime,omitempty"`
}

// RequiresDocument is the raw shape of a helper's requirements.
type RequiresDocument struct {
	Uniforms            []string        `json:"uniforms,omitempty"`
	InputParametersSpec []ParamDocument `json:"inputParametersSpec,omitempty"`
}

// HelperDocument is the raw shape of one helper definition.
type HelperDocument struct {
	GLSL     string            `json:"glsl"`
	Stage    string            `json:"stage,omitempty"` // empty means "any"
	Requires *RequiresDocument `json:"requires,omitempty"`
}

// TemplatesDocument is the raw shape of the templates section.
type TemplatesDocument struct {
	FragmentShader  string          `json:"fragment_shader,omitempty"`
	InputParameters []ParamDocument `json:"input_parameters,omitempty"`
}
