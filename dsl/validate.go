package dsl

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gogpu/shaderlib/uniform"
)

// requiredTopLevel is the exact key set of a v0.4 shader block.
var requiredTopLevel = []string{
	"name",
	"shader_lib_id",
	"vertex_shader",
	"fragment_shader",
	"uniforms",
	"input_parameters",
}

// ValidateShaderBlock validates a decoded shader descriptor against the
// v0.4 DSL rules. It returns nil on success and the first violation found
// otherwise.
func ValidateShaderBlock(block map[string]any) error {
	if err := checkTopLevelKeys(block); err != nil {
		return err
	}

	stageCodes := map[string]any{
		"vertex":   block["vertex_shader"],
		"fragment": block["fragment_shader"],
	}
	for _, stage := range []string{"vertex", "fragment"} {
		code, ok := stageCodes[stage].(string)
		if !ok {
			return fmt.Errorf("%s_shader must be a string", stage)
		}
		if !strings.Contains(code, "void main") {
			return fmt.Errorf("%s_shader missing 'void main'", stage)
		}
	}

	uniforms, ok := entryList(block["uniforms"])
	if !ok {
		return fmt.Errorf("uniforms must be a list")
	}
	uniformTypes := make(map[string]uniform.Type, len(uniforms))
	declared := make([]string, 0, len(uniforms))
	for _, u := range uniforms {
		name, typ, err := validateUniformEntry(u, uniformTypes)
		if err != nil {
			return err
		}
		uniformTypes[name] = typ
		declared = append(declared, name)
	}

	var missingReserved []string
	for _, name := range uniform.ReservedNames() {
		if _, ok := uniformTypes[name]; !ok {
			missingReserved = append(missingReserved, name)
		}
	}
	if len(missingReserved) > 0 {
		sort.Strings(missingReserved)
		return fmt.Errorf("missing reserved uniforms: %v", missingReserved)
	}

	params, ok := entryList(block["input_parameters"])
	if !ok {
		return fmt.Errorf("input_parameters must be a list")
	}
	for _, p := range params {
		if err := validateParamEntry(p, uniformTypes); err != nil {
			return err
		}
	}

	return checkWiring(declared, uniformTypes, params)
}

func checkTopLevelKeys(block map[string]any) error {
	required := make(map[string]bool, len(requiredTopLevel))
	var missing []string
	for _, k := range requiredTopLevel {
		required[k] = true
		if _, ok := block[k]; !ok {
			missing = append(missing, k)
		}
	}
	var extra []string
	for k := range block {
		if !required[k] {
			extra = append(extra, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing top-level keys: %v", missing)
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("unexpected top-level keys: %v", extra)
	}
	return nil
}

// validateUniformEntry checks one uniform declaration and returns its name
// and parsed type. seen holds the uniforms declared before it.
func validateUniformEntry(u map[string]any, seen map[string]uniform.Type) (string, uniform.Type, error) {
	name, ok := u["name"].(string)
	if !ok || name == "" {
		return "", uniform.Type{}, fmt.Errorf("uniform missing name")
	}
	if _, dup := seen[name]; dup {
		return "", uniform.Type{}, fmt.Errorf("duplicate uniform name: %s", name)
	}

	typeStr, ok := u["type"].(string)
	if !ok {
		return "", uniform.Type{}, fmt.Errorf("uniform %s missing type", name)
	}
	typ, err := uniform.ParseType(typeStr)
	if err != nil {
		return "", uniform.Type{}, fmt.Errorf("uniform %s has invalid type %s", name, typeStr)
	}

	size, sizePresent := u["size"]
	arrayLen := 0
	if typ.Array {
		n, ok := intValue(size)
		if !ok || n <= 0 {
			return "", uniform.Type{}, fmt.Errorf("uniform %s array size must be > 0", name)
		}
		arrayLen = n
	} else if sizePresent && size != nil {
		return "", uniform.Type{}, fmt.Errorf("uniform %s has size field but is not an array", name)
	}

	stage, _ := u["stage"].(string)
	if stage != "vertex" && stage != "fragment" {
		return "", uniform.Type{}, fmt.Errorf("uniform %s references undefined stage '%s'", name, stage)
	}

	if precision, ok := u["precision"]; ok && precision != nil {
		p, _ := precision.(string)
		if !uniform.ValidPrecision(p) {
			return "", uniform.Type{}, fmt.Errorf("uniform %s precision must be one of %v", name, uniform.Precisions())
		}
	}

	expected := typ.Base.Components()
	if typ.Array {
		expected *= arrayLen
	}
	if values, isList := u["default"].([]any); isList {
		if len(values) != expected {
			return "", uniform.Type{}, fmt.Errorf("uniform %s default length %d != %d", name, len(values), expected)
		}
	} else if expected != 1 {
		return "", uniform.Type{}, fmt.Errorf("uniform %s default must have %d values", name, expected)
	}

	if spec, reserved := uniform.LookupReserved(name); reserved {
		if typ.Base != spec.Type || typ.Array || stage != spec.Stage.String() {
			return "", uniform.Type{}, fmt.Errorf("reserved uniform %s must be type %s and stage %s",
				name, spec.Type, spec.Stage)
		}
	}

	return name, typ, nil
}

// validateParamEntry checks one input parameter binding against the
// declared uniforms. Arrays and vectors cannot be parameter-bound: only a
// plain scalar uniform is a legal target.
func validateParamEntry(p map[string]any, uniformTypes map[string]uniform.Type) error {
	label := p["name"]
	parameter, _ := p["parameter"].(string)
	typ, declared := uniformTypes[parameter]
	if !declared {
		return fmt.Errorf("input parameter %v references unknown uniform %v", label, p["parameter"])
	}
	if !typ.Base.Scalar() || typ.Array {
		return fmt.Errorf("input parameter %v can only target scalar uniforms", label)
	}

	pmin, minOK := numberValue(p["min"])
	pmax, maxOK := numberValue(p["max"])
	def, defOK := numberValue(p["default"])
	if !minOK || !maxOK || !defOK {
		return fmt.Errorf("input parameter %v must specify min, max and default", label)
	}
	if pmin > pmax {
		return fmt.Errorf("input parameter %v: min must be <= max", label)
	}
	if def < pmin || def > pmax {
		return fmt.Errorf("input parameter %v: default must be between min and max", label)
	}
	if step, ok := p["step"]; ok && step != nil {
		if n, ok := numberValue(step); !ok || n <= 0 {
			return fmt.Errorf("input parameter %v: step must be > 0", label)
		}
	}
	if st, ok := p["smoothingTime"]; ok && st != nil {
		if n, ok := numberValue(st); !ok || n < 0 {
			return fmt.Errorf("input parameter %v: smoothingTime must be >= 0", label)
		}
	}
	return nil
}

// checkWiring verifies that every controllable uniform — non-reserved,
// scalar float or int, not an array — is bound by exactly one parameter.
func checkWiring(declared []string, uniformTypes map[string]uniform.Type, params []map[string]any) error {
	counts := make(map[string]int, len(params))
	for _, p := range params {
		if parameter, ok := p["parameter"].(string); ok {
			counts[parameter]++
		}
	}
	for _, name := range declared {
		typ := uniformTypes[name]
		if uniform.IsReserved(name) || typ.Array {
			continue
		}
		if typ.Base != uniform.Float && typ.Base != uniform.Int {
			continue
		}
		switch counts[name] {
		case 0:
			return fmt.Errorf("controllable uniform %s missing from input_parameters", name)
		case 1:
		default:
			return fmt.Errorf("controllable uniform %s duplicated in input_parameters", name)
		}
	}
	return nil
}

// entryList coerces a decoded document list into entry maps. A nil value is
// treated as an empty list.
func entryList(v any) ([]map[string]any, bool) {
	if v == nil {
		return nil, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	entries := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		entries = append(entries, m)
	}
	return entries, true
}

// numberValue extracts a numeric document value. JSON decoding yields
// float64; YAML decoding may yield int.
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

// intValue extracts an integer document value, accepting whole floats from
// JSON decoding.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}
