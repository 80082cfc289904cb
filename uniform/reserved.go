package uniform

// ReservedUniform describes a uniform the runtime injects automatically.
// Documents may declare these, but only with exactly this type and stage.
type ReservedUniform struct {
	Name  string
	Type  BaseType
	Stage Stage
}

// Reserved uniform registry. Both the library model and the shader block
// validator read this table, keeping the two paths in sync about what
// "reserved" means. Read-only after process start.
var reserved = [...]ReservedUniform{
	{Name: "u_time", Type: Float, Stage: StageFragment},
	{Name: "u_resolution", Type: Vec2, Stage: StageFragment},
	{Name: "u_backgroundColor", Type: Vec3, Stage: StageFragment},
	{Name: "u_gridSize", Type: Float, Stage: StageFragment},
	{Name: "u_gridColor", Type: Vec3, Stage: StageFragment},
}

// Reserved returns the registry entries in their fixed order.
func Reserved() []ReservedUniform {
	out := make([]ReservedUniform, len(reserved))
	copy(out, reserved[:])
	return out
}

// ReservedNames returns the registry uniform names in their fixed order.
func ReservedNames() []string {
	names := make([]string, len(reserved))
	for i, r := range reserved {
		names[i] = r.Name
	}
	return names
}

// LookupReserved returns the registry entry for name, if any.
func LookupReserved(name string) (ReservedUniform, bool) {
	for _, r := range reserved {
		if r.Name == name {
			return r, true
		}
	}
	return ReservedUniform{}, false
}

// IsReserved reports whether name is a registry uniform.
func IsReserved(name string) bool {
	_, ok := LookupReserved(name)
	return ok
}
