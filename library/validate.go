package library

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/gogpu/shaderlib/uniform"
)

// Parse decodes and validates a ShaderLib v1 document. On failure the
// returned error is an ErrorList with one entry per violation.
func Parse(data []byte) (*Library, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode shaderlib document: %w", err)
	}
	lib, errs := Validate(&doc)
	if errs.HasErrors() {
		return nil, errs
	}
	return lib, nil
}

// Validate checks a decoded document and builds the validated library.
//
// Validation runs in two phases. Nested entities are parsed first: every
// input parameter goes through its type-directed field checks independently,
// contributing errors under its document path. Only when all nested entities
// are clean does the aggregate collision pass run over the whole structure.
// Either way every violation found is collected; validation never stops at
// the first. When any error exists no Library is returned.
func Validate(doc *Document) (*Library, ErrorList) {
	v := &validator{doc: doc}
	lib := v.validateDocument()
	if v.errs.HasErrors() {
		return nil, v.errs
	}
	return lib, nil
}

// validator accumulates validation errors over one document.
type validator struct {
	doc  *Document
	errs ErrorList
}

func (v *validator) validateDocument() *Library {
	doc := v.doc
	root := Path{}

	if doc.Name == "" {
		v.errs.Addf(root.Field("name"), CodeMissingField, "name is required")
	}

	lib := &Library{
		Name:             doc.Name,
		Version:          doc.Version,
		ReservedUniforms: doc.ReservedUniforms,
		Helpers:          make(map[string]Helper, len(doc.Helpers)),
	}
	if lib.ReservedUniforms == nil {
		lib.ReservedUniforms = DefaultReservedUniforms()
	}

	lib.BaseParams = v.validateParamList(doc.BaseInputParametersSpec, root.Field("baseInputParametersSpec"))

	for _, name := range sortedHelperNames(doc.Helpers) {
		lib.Helpers[name] = v.validateHelper(doc.Helpers[name], root.Field("helpers").Field(name))
	}

	if doc.Templates != nil {
		tp := root.Field("templates")
		lib.Templates = &Templates{
			FragmentShader:  doc.Templates.FragmentShader,
			InputParameters: v.validateParamList(doc.Templates.InputParameters, tp.Field("input_parameters")),
		}
	}

	// The collision pass inspects parsed entities, so it only runs once the
	// nested ones are all syntactically valid.
	if !v.errs.HasErrors() {
		v.checkCollisions(lib)
	}
	return lib
}

func (v *validator) validateHelper(doc HelperDocument, path Path) Helper {
	h := Helper{GLSL: doc.GLSL, Stage: uniform.StageAny}

	if doc.GLSL == "" {
		v.errs.Addf(path.Field("glsl"), CodeMissingField, "glsl is required")
	}
	if doc.Stage != "" {
		stage, err := uniform.ParseStage(doc.Stage)
		if err != nil || stage == uniform.StageCompute {
			v.errs.Addf(path.Field("stage"), CodeInvalidType,
				"stage must be one of fragment, vertex, any")
		} else {
			h.Stage = stage
		}
	}
	if doc.Requires != nil {
		h.Requires = Requires{
			Uniforms: doc.Requires.Uniforms,
			Params: v.validateParamList(doc.Requires.InputParametersSpec,
				path.Field("requires").Field("inputParametersSpec")),
		}
	}
	return h
}

func (v *validator) validateParamList(docs []ParamDocument, path Path) []InputParam {
	if len(docs) == 0 {
		return nil
	}
	params := make([]InputParam, 0, len(docs))
	for i, pd := range docs {
		if p, ok := v.validateParam(pd, path.Index(i)); ok {
			params = append(params, p)
		}
	}
	return params
}

// validateParam applies the type-directed field rules of one input
// parameter, collecting every violation rather than stopping at the first.
// Type-directed checks only run once the parameter is structurally sound.
func (v *validator) validateParam(doc ParamDocument, path Path) (InputParam, bool) {
	before := v.errs.Len()

	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", doc.Name},
		{"parameter", doc.Parameter},
		{"path", doc.Path},
	} {
		if f.value == nil {
			v.errs.Addf(path.Field(f.name), CodeMissingField, "%s is required", f.name)
		}
	}

	var ptype ParamType
	if doc.Type == nil {
		v.errs.Addf(path.Field("type"), CodeMissingField, "type is required")
	} else {
		var err error
		if ptype, err = ParseParamType(*doc.Type); err != nil {
			v.errs.Addf(path.Field("type"), CodeInvalidType, "type must be one of float, int, bool")
		}
	}
	if doc.Default == nil {
		v.errs.Addf(path.Field("default"), CodeMissingField, "default is required")
	}

	if v.errs.Len() > before {
		return InputParam{}, false
	}

	p := InputParam{
		Name:          *doc.Name,
		Parameter:     *doc.Parameter,
		Path:          *doc.Path,
		Type:          ptype,
		Default:       doc.Default,
		Min:           doc.Min,
		Max:           doc.Max,
		Step:          doc.Step,
		SmoothingTime: doc.SmoothingTime,
	}

	switch ptype {
	case ParamFloat:
		if _, ok := numberValue(doc.Default); !ok {
			v.errs.Addf(path.Field("default"), CodeInvalidType, "for float, default must be a number")
		}
		if doc.Step == nil || *doc.Step <= 0 || *doc.Step > 0.01 {
			v.errs.Addf(path.Field("step"), CodeInvalidStep, "for float, step must be > 0 and <= 0.01")
		}
		if doc.SmoothingTime == nil || *doc.SmoothingTime <= 0 {
			v.errs.Addf(path.Field("smoothingTime"), CodeInvalidSmoothing, "for float, smoothingTime > 0 required")
		}

	case ParamInt:
		if doc.Step == nil || !isWhole(*doc.Step) || *doc.Step < 1 {
			v.errs.Addf(path.Field("step"), CodeInvalidStep, "for int, step must be integer >= 1")
		}
		if n, ok := numberValue(doc.Default); !ok || !isWhole(n) {
			v.errs.Addf(path.Field("default"), CodeInvalidInt, "default must be integer")
		}
		if doc.Min != nil && !isWhole(*doc.Min) {
			v.errs.Addf(path.Field("min"), CodeInvalidInt, "min must be integer")
		}
		if doc.Max != nil && !isWhole(*doc.Max) {
			v.errs.Addf(path.Field("max"), CodeInvalidInt, "max must be integer")
		}
		if doc.SmoothingTime == nil || *doc.SmoothingTime <= 0 {
			v.errs.Addf(path.Field("smoothingTime"), CodeInvalidSmoothing, "for int, smoothingTime > 0 required")
		}

	case ParamBool:
		if _, ok := doc.Default.(bool); !ok {
			v.errs.Addf(path.Field("default"), CodeInvalidType, "for bool, default must be a boolean")
		}
		if doc.Step != nil {
			v.errs.Addf(path.Field("step"), CodeInvalidBoolField, "for bool, step not allowed")
		}
		if doc.SmoothingTime != nil {
			v.errs.Addf(path.Field("smoothingTime"), CodeInvalidBoolField, "for bool, smoothingTime not allowed")
		}
		if doc.Min != nil || doc.Max != nil {
			v.errs.Addf(path, CodeInvalidBoolField, "for bool, min/max not allowed")
		}
	}

	if ptype == ParamFloat || ptype == ParamInt {
		if doc.Min != nil && doc.Max != nil && *doc.Min > *doc.Max {
			v.errs.Addf(path, CodeInvalidRange, "min must be <= max")
		}
	}

	return p, v.errs.Len() == before
}

// checkCollisions is the aggregate pass over the fully parsed structure. It
// emits one error per violation across the three identifier namespaces.
// Helper-to-helper collisions are deliberately not flagged: two helpers'
// requirements are never simultaneously active, so that case is deferred to
// merge time.
func (v *validator) checkCollisions(lib *Library) {
	root := Path{}

	seenReserved := make(map[string]bool, len(lib.ReservedUniforms))
	for i, u := range lib.ReservedUniforms {
		if seenReserved[u] {
			v.errs.Addf(root.Field("reservedUniforms").Index(i), CodeCollisionReservedUniform,
				"duplicate reserved uniform %q", u)
		}
		seenReserved[u] = true
	}

	basePath := root.Field("baseInputParametersSpec")
	seenBase := make(map[string]bool, len(lib.BaseParams))
	for i, p := range lib.BaseParams {
		if seenBase[p.Parameter] {
			v.errs.Addf(basePath.Index(i).Field("parameter"), CodeCollisionBaseParameter,
				"duplicate parameter %q", p.Parameter)
		}
		seenBase[p.Parameter] = true
	}
	for _, required := range []string{ParamPositionX, ParamPositionY} {
		if !seenBase[required] {
			v.errs.Addf(basePath, CodeMissingBaseParameter, "missing control for %q", required)
		}
	}

	for _, hname := range sortedHelperNames(lib.Helpers) {
		helper := lib.Helpers[hname]
		hpath := root.Field("helpers").Field(hname).Field("requires")

		seenUniform := make(map[string]bool, len(helper.Requires.Uniforms))
		for i, u := range helper.Requires.Uniforms {
			upath := hpath.Field("uniforms").Index(i)
			if seenReserved[u] {
				v.errs.Addf(upath, CodeCollisionReservedUniform, "duplicates reserved uniform %q", u)
			}
			if seenUniform[u] {
				v.errs.Addf(upath, CodeCollisionHelperUniform, "duplicate uniform %q", u)
			}
			seenUniform[u] = true
		}

		seenParam := make(map[string]bool, len(helper.Requires.Params))
		for j, p := range helper.Requires.Params {
			ppath := hpath.Field("inputParametersSpec").Index(j).Field("parameter")
			if seenReserved[p.Parameter] {
				v.errs.Addf(ppath, CodeCollisionReservedUniform, "duplicates reserved uniform %q", p.Parameter)
			}
			if seenBase[p.Parameter] {
				v.errs.Addf(ppath, CodeCollisionBaseParameter, "duplicates base parameter %q", p.Parameter)
			}
			if seenParam[p.Parameter] {
				v.errs.Addf(ppath, CodeCollisionHelperParameter, "duplicate parameter %q", p.Parameter)
			}
			seenParam[p.Parameter] = true
		}
	}
}

// sortedHelperNames fixes the iteration order over the helpers map so that
// error ordering is deterministic.
func sortedHelperNames[V any](helpers map[string]V) []string {
	names := make([]string, 0, len(helpers))
	for name := range helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// numberValue extracts a numeric document value. JSON decoding yields
// float64; YAML front ends may hand through int.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func isWhole(f float64) bool {
	return f == math.Trunc(f)
}
