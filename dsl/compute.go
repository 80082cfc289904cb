package dsl

import (
	"fmt"
	"regexp"
	"sort"
)

// uniformRef matches identifiers following the uniform naming convention.
var uniformRef = regexp.MustCompile(`u_[A-Za-z0-9_]+`)

// Uniforms the compute runtime injects without a declaration.
var computeBuiltins = map[string]bool{
	"u_time":       true,
	"u_resolution": true,
}

// ValidateComputeShaderBlock validates a compute-only shader block. The rule
// set is narrower than the v0.4 fragment/vertex one: every declared uniform
// must be textually referenced in the compute source, every u_* identifier
// used by the source must be declared or be a built-in, and every parameter
// binding must reference a declared uniform.
func ValidateComputeShaderBlock(block map[string]any) error {
	uniforms, ok := entryList(block["uniforms"])
	if !ok {
		return fmt.Errorf("uniforms must be a list")
	}
	params, ok := entryList(block["input_parameters"])
	if !ok {
		return fmt.Errorf("input_parameters must be a list")
	}
	code, _ := block["compute_shader"].(string)

	declared := make(map[string]bool, len(uniforms))
	for _, u := range uniforms {
		if name, ok := u["name"].(string); ok {
			declared[name] = true
		}
	}
	used := make(map[string]bool)
	for _, name := range uniformRef.FindAllString(code, -1) {
		used[name] = true
	}

	var missing []string
	for _, p := range params {
		if ref, ok := p["parameter"].(string); ok && !declared[ref] {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("input parameters reference undeclared uniforms: %v", sorted(missing))
	}

	var unused []string
	for name := range declared {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		return fmt.Errorf("declared uniforms not used: %v", sorted(unused))
	}

	var undeclared []string
	for name := range used {
		if !declared[name] && !computeBuiltins[name] {
			undeclared = append(undeclared, name)
		}
	}
	if len(undeclared) > 0 {
		return fmt.Errorf("shader uses undeclared uniforms: %v", sorted(undeclared))
	}
	return nil
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
