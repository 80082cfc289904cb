package library

import "fmt"

// EffectiveInputs is the computed union of a library's base requirements and
// one helper's extra requirements: what a live parameter-control UI must
// render for that helper. Ephemeral — recomputed on every query.
type EffectiveInputs struct {
	Uniforms []string
	Params   []InputParam
}

// EffectiveInputs merges the library's reserved uniforms and base parameters
// with the named helper's requirements.
//
// Uniforms keep reserved order first, then the helper's extras in declared
// order, skipping any already present, so the merge is idempotent and
// order-stable. Parameters are base entries followed by helper entries; a
// helper parameter whose identifier repeats a base parameter fails the whole
// call with a single COLLISION_BASE_PARAMETER error located at the offending
// helper entry. Construction already rejects that collision, but the check is
// repeated here on purpose: the merge must not trust that a library exposed
// to callers is still in its validated state.
//
// The returned error, when non-nil, is a *Error whose Code is
// HELPER_NOT_FOUND or COLLISION_BASE_PARAMETER.
func (l *Library) EffectiveInputs(helperName string) (*EffectiveInputs, error) {
	helper, ok := l.Helpers[helperName]
	if !ok {
		return nil, &Error{
			Path:    Path{}.Field("helpers").Field(helperName),
			Code:    CodeHelperNotFound,
			Message: "helper not found",
		}
	}

	uniforms := make([]string, 0, len(l.ReservedUniforms)+len(helper.Requires.Uniforms))
	present := make(map[string]bool, cap(uniforms))
	for _, u := range l.ReservedUniforms {
		if !present[u] {
			uniforms = append(uniforms, u)
			present[u] = true
		}
	}
	for _, u := range helper.Requires.Uniforms {
		if !present[u] {
			uniforms = append(uniforms, u)
			present[u] = true
		}
	}

	params := make([]InputParam, 0, len(l.BaseParams)+len(helper.Requires.Params))
	existing := make(map[string]bool, cap(params))
	for _, p := range l.BaseParams {
		params = append(params, p)
		existing[p.Parameter] = true
	}
	for j, p := range helper.Requires.Params {
		if existing[p.Parameter] {
			return nil, &Error{
				Path: Path{}.Field("helpers").Field(helperName).
					Field("requires").Field("inputParametersSpec").Index(j).Field("parameter"),
				Code:    CodeCollisionBaseParameter,
				Message: fmt.Sprintf("duplicates base parameter %q", p.Parameter),
			}
		}
		params = append(params, p)
		existing[p.Parameter] = true
	}

	return &EffectiveInputs{Uniforms: uniforms, Params: params}, nil
}
