package uniform

import (
	"fmt"
	"strings"
)

// Stage identifies the shader stage a uniform or helper is scoped to.
type Stage uint8

const (
	// StageFragment scopes to the fragment shader.
	StageFragment Stage = iota
	// StageVertex scopes to the vertex shader.
	StageVertex
	// StageAny means the entity may be used in any stage.
	StageAny
	// StageCompute scopes to a compute shader.
	StageCompute
)

// String returns the lowercase stage name as it appears in documents.
func (s Stage) String() string {
	switch s {
	case StageFragment:
		return "fragment"
	case StageVertex:
		return "vertex"
	case StageAny:
		return "any"
	case StageCompute:
		return "compute"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// ParseStage parses a document stage string.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "fragment":
		return StageFragment, nil
	case "vertex":
		return StageVertex, nil
	case "any":
		return StageAny, nil
	case "compute":
		return StageCompute, nil
	}
	return 0, fmt.Errorf("invalid stage %q", s)
}

// BaseType is a GLSL base type usable as a uniform type.
type BaseType uint8

const (
	Float BaseType = iota
	Int
	Bool
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
	Sampler2D
)

var baseTypeNames = [...]string{
	Float:     "float",
	Int:       "int",
	Bool:      "bool",
	Vec2:      "vec2",
	Vec3:      "vec3",
	Vec4:      "vec4",
	Mat2:      "mat2",
	Mat3:      "mat3",
	Mat4:      "mat4",
	Sampler2D: "sampler2D",
}

// String returns the GLSL spelling of the type.
func (t BaseType) String() string {
	if int(t) < len(baseTypeNames) {
		return baseTypeNames[t]
	}
	return fmt.Sprintf("BaseType(%d)", uint8(t))
}

// Components returns the number of scalar components a value of this type
// carries: 1 for scalars and samplers, 2–4 for vectors, 4/9/16 for matrices.
func (t BaseType) Components() int {
	switch t {
	case Float, Int, Bool, Sampler2D:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	}
	return 0
}

// Scalar reports whether the type is a scalar (float, int or bool).
func (t BaseType) Scalar() bool {
	return t == Float || t == Int || t == Bool
}

// Type is a uniform type: a base type with an optional array marker.
// Array types are spelled with a "[]" suffix in documents ("float[]").
type Type struct {
	Base  BaseType
	Array bool
}

// String returns the document spelling of the type.
func (t Type) String() string {
	if t.Array {
		return t.Base.String() + "[]"
	}
	return t.Base.String()
}

// ParseBaseType parses a GLSL base type name.
func ParseBaseType(s string) (BaseType, error) {
	for i, name := range baseTypeNames {
		if s == name {
			return BaseType(i), nil
		}
	}
	return 0, fmt.Errorf("invalid uniform type %q", s)
}

// ParseType parses a uniform type, accepting an optional "[]" array suffix.
func ParseType(s string) (Type, error) {
	base, array := strings.CutSuffix(s, "[]")
	bt, err := ParseBaseType(base)
	if err != nil {
		return Type{}, fmt.Errorf("invalid uniform type %q", s)
	}
	return Type{Base: bt, Array: array}, nil
}

// ValidPrecision reports whether s is one of the GLSL precision qualifiers.
func ValidPrecision(s string) bool {
	return s == "lowp" || s == "mediump" || s == "highp"
}

// Precisions returns the GLSL precision qualifiers in ascending order.
func Precisions() []string {
	return []string{"lowp", "mediump", "highp"}
}
