package library

import (
	"testing"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

// floatParamDoc returns a valid float parameter document bound to target.
func floatParamDoc(target string) ParamDocument {
	return ParamDocument{
		Name:          strPtr("control " + target),
		Parameter:     strPtr(target),
		Path:          strPtr(target),
		Type:          strPtr("float"),
		Default:       float64(0),
		Min:           f64Ptr(-1),
		Max:           f64Ptr(1),
		Step:          f64Ptr(0.01),
		SmoothingTime: f64Ptr(0.05),
	}
}

// baseDoc returns a minimal valid library document: default reserved
// uniforms, the two mandatory positional controls, no helpers.
func baseDoc() *Document {
	return &Document{
		Name: "TestLib",
		BaseInputParametersSpec: []ParamDocument{
			floatParamDoc(ParamPositionX),
			floatParamDoc(ParamPositionY),
		},
		Helpers: map[string]HelperDocument{},
	}
}

func mustValidate(t *testing.T, doc *Document) *Library {
	t.Helper()
	lib, errs := Validate(doc)
	if errs.HasErrors() {
		t.Fatalf("Validate failed:\n%s", errList(errs))
	}
	return lib
}

func errList(errs ErrorList) string {
	out := ""
	for _, e := range errs {
		out += "  - " + e.Error() + " [" + string(e.Code) + "]\n"
	}
	return out
}

// findCode returns the errors carrying the given code.
func findCode(errs ErrorList, code Code) []*Error {
	var out []*Error
	for _, e := range errs {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

func TestValidate_MinimalDocument(t *testing.T) {
	lib := mustValidate(t, baseDoc())

	if len(lib.ReservedUniforms) != 7 {
		t.Errorf("default reserved uniforms: got %d, want 7", len(lib.ReservedUniforms))
	}
	if lib.ReservedUniforms[0] != "u_time" || lib.ReservedUniforms[6] != "u_py" {
		t.Errorf("unexpected default reserved uniforms: %v", lib.ReservedUniforms)
	}
	if len(lib.BaseParams) != 2 {
		t.Errorf("base params: got %d, want 2", len(lib.BaseParams))
	}
}

func TestValidateParam_FloatStepWindow(t *testing.T) {
	tests := []struct {
		name    string
		step    *float64
		wantErr bool
	}{
		{"missing", nil, true},
		{"zero", f64Ptr(0), true},
		{"negative", f64Ptr(-0.01), true},
		{"too large", f64Ptr(0.02), true},
		{"upper bound", f64Ptr(0.01), false},
		{"small", f64Ptr(0.001), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDoc()
			p := floatParamDoc(ParamPositionX)
			p.Step = tt.step
			doc.BaseInputParametersSpec[0] = p

			_, errs := Validate(doc)
			got := findCode(errs, CodeInvalidStep)
			if tt.wantErr && len(got) == 0 {
				t.Errorf("expected INVALID_STEP, got:\n%s", errList(errs))
			}
			if !tt.wantErr && errs.HasErrors() {
				t.Errorf("unexpected errors:\n%s", errList(errs))
			}
			if tt.wantErr && len(got) > 0 {
				want := "baseInputParametersSpec[0].step"
				if got[0].Path.String() != want {
					t.Errorf("path: got %q, want %q", got[0].Path, want)
				}
			}
		})
	}
}

func TestValidateParam_FloatSmoothingRequired(t *testing.T) {
	doc := baseDoc()
	p := floatParamDoc(ParamPositionY)
	p.SmoothingTime = f64Ptr(0)
	doc.BaseInputParametersSpec[1] = p

	_, errs := Validate(doc)
	if len(findCode(errs, CodeInvalidSmoothing)) != 1 {
		t.Errorf("expected one INVALID_SMOOTHING, got:\n%s", errList(errs))
	}
}

func TestValidateParam_IntRules(t *testing.T) {
	intParam := func() ParamDocument {
		return ParamDocument{
			Name:          strPtr("count"),
			Parameter:     strPtr("u_count"),
			Path:          strPtr("u_count"),
			Type:          strPtr("int"),
			Default:       float64(3),
			Min:           f64Ptr(0),
			Max:           f64Ptr(10),
			Step:          f64Ptr(1),
			SmoothingTime: f64Ptr(0.1),
		}
	}

	t.Run("valid", func(t *testing.T) {
		doc := baseDoc()
		doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, intParam())
		mustValidate(t, doc)
	})

	t.Run("fractional step", func(t *testing.T) {
		doc := baseDoc()
		p := intParam()
		p.Step = f64Ptr(0.5)
		doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, p)
		_, errs := Validate(doc)
		if len(findCode(errs, CodeInvalidStep)) != 1 {
			t.Errorf("expected INVALID_STEP, got:\n%s", errList(errs))
		}
	})

	t.Run("fractional bounds", func(t *testing.T) {
		doc := baseDoc()
		p := intParam()
		p.Min = f64Ptr(0.5)
		p.Max = f64Ptr(9.5)
		p.Default = float64(2.5)
		doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, p)
		_, errs := Validate(doc)
		if len(findCode(errs, CodeInvalidInt)) != 3 {
			t.Errorf("expected three INVALID_INT, got:\n%s", errList(errs))
		}
	})

	t.Run("bounds optional", func(t *testing.T) {
		doc := baseDoc()
		p := intParam()
		p.Min = nil
		p.Max = nil
		doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, p)
		mustValidate(t, doc)
	})
}

func TestValidateParam_BoolForbiddenFields(t *testing.T) {
	boolParam := func() ParamDocument {
		return ParamDocument{
			Name:      strPtr("invert"),
			Parameter: strPtr("u_invert"),
			Path:      strPtr("u_invert"),
			Type:      strPtr("bool"),
			Default:   true,
		}
	}

	t.Run("valid", func(t *testing.T) {
		doc := baseDoc()
		doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, boolParam())
		mustValidate(t, doc)
	})

	tests := []struct {
		name   string
		mutate func(*ParamDocument)
	}{
		{"step", func(p *ParamDocument) { p.Step = f64Ptr(0.01) }},
		{"smoothingTime", func(p *ParamDocument) { p.SmoothingTime = f64Ptr(0.05) }},
		{"min", func(p *ParamDocument) { p.Min = f64Ptr(0) }},
		{"max", func(p *ParamDocument) { p.Max = f64Ptr(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := baseDoc()
			p := boolParam()
			tt.mutate(&p)
			doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, p)
			_, errs := Validate(doc)
			if len(findCode(errs, CodeInvalidBoolField)) == 0 {
				t.Errorf("expected INVALID_BOOL_FIELD, got:\n%s", errList(errs))
			}
		})
	}
}

func TestValidateParam_Range(t *testing.T) {
	doc := baseDoc()
	p := floatParamDoc(ParamPositionX)
	p.Min = f64Ptr(2)
	p.Max = f64Ptr(1)
	doc.BaseInputParametersSpec[0] = p

	_, errs := Validate(doc)
	if len(findCode(errs, CodeInvalidRange)) != 1 {
		t.Errorf("expected INVALID_RANGE, got:\n%s", errList(errs))
	}
}

// All violations of one parameter are reported together, not just the first.
func TestValidateParam_CollectsAllViolations(t *testing.T) {
	doc := baseDoc()
	p := floatParamDoc(ParamPositionX)
	p.Step = f64Ptr(0.5)
	p.SmoothingTime = nil
	p.Min = f64Ptr(3)
	p.Max = f64Ptr(1)
	doc.BaseInputParametersSpec[0] = p

	_, errs := Validate(doc)
	if errs.Len() != 3 {
		t.Fatalf("expected 3 errors, got %d:\n%s", errs.Len(), errList(errs))
	}
	for _, code := range []Code{CodeInvalidStep, CodeInvalidSmoothing, CodeInvalidRange} {
		if len(findCode(errs, code)) != 1 {
			t.Errorf("missing %s in:\n%s", code, errList(errs))
		}
	}
}

func TestValidate_MissingBaseControls(t *testing.T) {
	doc := baseDoc()
	doc.BaseInputParametersSpec = []ParamDocument{floatParamDoc("u_other")}

	_, errs := Validate(doc)
	missing := findCode(errs, CodeMissingBaseParameter)
	if len(missing) != 2 {
		t.Fatalf("expected 2 MISSING_BASE_PARAMETER, got:\n%s", errList(errs))
	}
	if missing[0].Path.String() != "baseInputParametersSpec" {
		t.Errorf("path: got %q, want baseInputParametersSpec", missing[0].Path)
	}
}

func TestValidate_DuplicateBaseParameter(t *testing.T) {
	doc := baseDoc()
	doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, floatParamDoc(ParamPositionX))

	_, errs := Validate(doc)
	dups := findCode(errs, CodeCollisionBaseParameter)
	if len(dups) != 1 {
		t.Fatalf("expected one COLLISION_BASE_PARAMETER, got:\n%s", errList(errs))
	}
	// The repeated entry is flagged, not the original.
	if got, want := dups[0].Path.String(), "baseInputParametersSpec[2].parameter"; got != want {
		t.Errorf("path: got %q, want %q", got, want)
	}
}

func TestValidate_DuplicateReservedUniform(t *testing.T) {
	doc := baseDoc()
	doc.ReservedUniforms = []string{"u_time", "u_resolution", "u_time", "u_px", "u_py"}
	doc.BaseInputParametersSpec = []ParamDocument{
		floatParamDoc(ParamPositionX),
		floatParamDoc(ParamPositionY),
	}

	_, errs := Validate(doc)
	dups := findCode(errs, CodeCollisionReservedUniform)
	if len(dups) != 1 {
		t.Fatalf("expected one COLLISION_RESERVED_UNIFORM, got:\n%s", errList(errs))
	}
	if got, want := dups[0].Path.String(), "reservedUniforms[2]"; got != want {
		t.Errorf("path: got %q, want %q", got, want)
	}
}

func TestValidate_HelperCollisions(t *testing.T) {
	doc := baseDoc()
	doc.Helpers["sdBad"] = HelperDocument{
		GLSL:  "float sdBad(vec2 p) { return 0.0; }",
		Stage: "fragment",
		Requires: &RequiresDocument{
			// u_time collides with reserved; u_r repeats within the helper.
			Uniforms: []string{"u_time", "u_r", "u_r"},
			InputParametersSpec: []ParamDocument{
				floatParamDoc(ParamPositionX), // collides with base
				floatParamDoc("u_k"),
				floatParamDoc("u_k"), // repeats within the helper
			},
		},
	}

	_, errs := Validate(doc)
	checks := []struct {
		code Code
		path string
	}{
		{CodeCollisionReservedUniform, "helpers.sdBad.requires.uniforms[0]"},
		{CodeCollisionHelperUniform, "helpers.sdBad.requires.uniforms[2]"},
		{CodeCollisionBaseParameter, "helpers.sdBad.requires.inputParametersSpec[0].parameter"},
		{CodeCollisionHelperParameter, "helpers.sdBad.requires.inputParametersSpec[2].parameter"},
	}
	for _, c := range checks {
		found := false
		for _, e := range findCode(errs, c.code) {
			if e.Path.String() == c.path {
				found = true
			}
		}
		if !found {
			t.Errorf("missing %s at %s in:\n%s", c.code, c.path, errList(errs))
		}
	}
	if errs.Len() != len(checks) {
		t.Errorf("expected %d errors, got %d:\n%s", len(checks), errs.Len(), errList(errs))
	}
}

// Two helpers reusing the same identifier is legal at construction time:
// their requirements are never active together, so the clash is only
// rejected at merge time.
func TestValidate_HelperToHelperReuseAllowed(t *testing.T) {
	doc := baseDoc()
	for _, name := range []string{"sdCircle", "sdSquare"} {
		doc.Helpers[name] = HelperDocument{
			GLSL: "float " + name + "(vec2 p) { return 0.0; }",
			Requires: &RequiresDocument{
				Uniforms:            []string{"u_r"},
				InputParametersSpec: []ParamDocument{floatParamDoc("u_r")},
			},
		}
	}
	mustValidate(t, doc)
}

func TestValidate_HelperStageDefaultsToAny(t *testing.T) {
	doc := baseDoc()
	doc.Helpers["noise"] = HelperDocument{GLSL: "float noise() { return 0.0; }"}
	lib := mustValidate(t, doc)

	if got := lib.Helpers["noise"].Stage.String(); got != "any" {
		t.Errorf("stage: got %q, want any", got)
	}
}

func TestValidate_HelperInvalidStage(t *testing.T) {
	doc := baseDoc()
	doc.Helpers["noise"] = HelperDocument{GLSL: "float noise() { return 0.0; }", Stage: "geometry"}

	_, errs := Validate(doc)
	bad := findCode(errs, CodeInvalidType)
	if len(bad) != 1 || bad[0].Path.String() != "helpers.noise.stage" {
		t.Errorf("expected INVALID_TYPE at helpers.noise.stage, got:\n%s", errList(errs))
	}
}

// Nested parameter errors carry the helper path prefix, and the collision
// pass is skipped while any nested entity is broken.
func TestValidate_HelperParamPathPrefix(t *testing.T) {
	doc := baseDoc()
	bad := floatParamDoc("u_r")
	bad.Step = f64Ptr(0.5)
	doc.Helpers["sdHexagon"] = HelperDocument{
		GLSL:     "float sdHexagon(vec2 p) { return 0.0; }",
		Requires: &RequiresDocument{InputParametersSpec: []ParamDocument{bad}},
	}

	_, errs := Validate(doc)
	if errs.Len() != 1 {
		t.Fatalf("expected 1 error, got:\n%s", errList(errs))
	}
	want := "helpers.sdHexagon.requires.inputParametersSpec[0].step"
	if got := errs[0].Path.String(); got != want {
		t.Errorf("path: got %q, want %q", got, want)
	}
}

func TestValidate_MissingParamFields(t *testing.T) {
	doc := baseDoc()
	doc.BaseInputParametersSpec = append(doc.BaseInputParametersSpec, ParamDocument{
		Type: strPtr("float"),
	})

	_, errs := Validate(doc)
	missing := findCode(errs, CodeMissingField)
	if len(missing) != 4 { // name, parameter, path, default
		t.Errorf("expected 4 MISSING_FIELD, got:\n%s", errList(errs))
	}
}

func TestValidate_NoInstanceOnFailure(t *testing.T) {
	doc := baseDoc()
	doc.BaseInputParametersSpec = nil

	lib, errs := Validate(doc)
	if lib != nil {
		t.Error("expected nil library on failure")
	}
	if !errs.HasErrors() {
		t.Error("expected errors")
	}
}

func TestParse_DecodesAndValidates(t *testing.T) {
	data := []byte(`{
		"name": "ExampleLib",
		"version": "1",
		"baseInputParametersSpec": [
			{"name": "positionX", "parameter": "u_px", "path": "u_px", "type": "float",
			 "default": 0.0, "min": -1.0, "max": 1.0, "step": 0.01, "smoothingTime": 0.05},
			{"name": "positionY", "parameter": "u_py", "path": "u_py", "type": "float",
			 "default": 0.0, "min": -1.0, "max": 1.0, "step": 0.01, "smoothingTime": 0.05}
		],
		"helpers": {
			"sdHexagon": {
				"glsl": "float sdHexagon(vec2 p, float r) { return 0.0; }",
				"stage": "fragment",
				"requires": {
					"uniforms": ["u_r"],
					"inputParametersSpec": [
						{"name": "radius", "parameter": "u_r", "path": "u_r", "type": "float",
						 "default": 0.5, "min": 0.1, "max": 2.0, "step": 0.01, "smoothingTime": 0.05}
					]
				}
			}
		}
	}`)

	lib, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if lib.Name != "ExampleLib" {
		t.Errorf("name: got %q", lib.Name)
	}
	if _, ok := lib.Helpers["sdHexagon"]; !ok {
		t.Error("missing helper sdHexagon")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Error("expected decode error")
	}
}
