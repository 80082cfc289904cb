// Package library implements the ShaderLib v1 document model.
//
// A ShaderLib declares the reserved uniforms a runtime injects, a base set of
// input parameters (the live controls every patch gets), and a collection of
// named GLSL helpers, each with optional extra uniform and parameter
// requirements. The package validates untrusted decoded documents, merges
// base and helper requirements into an effective input specification, and
// heuristically checks that a fragment template demonstrates a helper.
//
// # Validation model
//
// Validation never stops at the first problem. Every violation is collected
// into an ErrorList, each entry carrying a Path into the document, a stable
// machine-readable Code, and a human message. Callers rendering a form can
// highlight every offending field in one round trip:
//
//	lib, errs := library.Parse(data)
//	if errs != nil {
//	    for _, e := range errs.(library.ErrorList) {
//	        fmt.Printf("%s: %s (%s)\n", e.Path, e.Message, e.Code)
//	    }
//	}
//
// A *Library only exists if the whole document validated; the value is
// treated as immutable afterwards. All operations on it are pure reads and
// safe for concurrent use.
//
// # Namespaces
//
// Three identifier namespaces are kept free of unintended collisions:
// reserved uniforms, base parameter names, and each helper's own uniform and
// parameter names. Two different helpers may reuse an identifier — their
// requirements are never active at the same time — so that case is only
// rejected at merge time, never at construction time.
package library
