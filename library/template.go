package library

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// stripPattern removes line comments, block comments and string literals
// before the template is searched, so commented-out or quoted helper names
// do not count as usage. Code outside those regions is left intact.
var stripPattern = regexp.MustCompile(`(?ms)//.*?$|/\*.*?\*/|"(?:\\.|[^"\\])*"`)

// TemplateReport is the advisory result of CheckTemplate. It never blocks
// validation; warnings point at material the template probably forgot.
type TemplateReport struct {
	Valid    bool
	Warnings []string
}

// CheckTemplate reports whether the library's fragment-shader template
// appears to demonstrate the named helper.
//
// The check is a substring heuristic over the comment- and string-stripped
// template text, not a GLSL parse. It tolerates false positives (a helper
// name inside a longer identifier) and false negatives (invocation through a
// macro) in exchange for zero grammar dependency; callers rely on that
// leniency. Each of the helper's extra uniforms that is not reserved and
// does not occur in the stripped text yields a warning.
func (l *Library) CheckTemplate(helperName string) TemplateReport {
	if l.Templates == nil || l.Templates.FragmentShader == "" {
		return TemplateReport{Warnings: []string{"no fragment_shader template"}}
	}

	stripped := stripPattern.ReplaceAllString(l.Templates.FragmentShader, "")
	report := TemplateReport{Valid: strings.Contains(stripped, helperName)}

	helper, ok := l.Helpers[helperName]
	if !ok {
		return report
	}
	for _, u := range helper.Requires.Uniforms {
		if slices.Contains(l.ReservedUniforms, u) {
			continue
		}
		if !strings.Contains(stripped, u) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("uniform '%s' not referenced", u))
		}
	}
	return report
}
