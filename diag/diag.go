// Package diag defines the diagnostics reported while generating and the
// rules that produce them.
package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/notifygen/host"
)

// Severity indicates how serious a diagnostic is
type Severity string

const (
	SeverityError   Severity = "error"   // Generation for the type is impossible
	SeverityWarning Severity = "warning" // Generation proceeds but output is likely wrong
	SeverityInfo    Severity = "info"    // Informational, nothing was generated for the field
)

// Code identifies a diagnostic rule
type Code string

const (
	CodeNotExtensible    Code = "NOTIFY001"
	CodeNoEligibleFields Code = "NOTIFY002"
	CodeUnknownDependent Code = "NOTIFY003"
	CodeStaticField      Code = "NOTIFY004"
	CodeReadOnlyField    Code = "NOTIFY005"
)

var severities = map[Code]Severity{
	CodeNotExtensible:    SeverityError,
	CodeNoEligibleFields: SeverityWarning,
	CodeUnknownDependent: SeverityWarning,
	CodeStaticField:      SeverityInfo,
	CodeReadOnlyField:    SeverityInfo,
}

var titles = map[Code]string{
	CodeNotExtensible:    "observable type is not extensible",
	CodeNoEligibleFields: "observable type has no eligible fields",
	CodeUnknownDependent: "dependent accessor not found",
	CodeStaticField:      "static field ignored",
	CodeReadOnlyField:    "read-only field ignored",
}

// Severity returns the fixed severity of the rule.
func (c Code) Severity() Severity {
	return severities[c]
}

// Title is the short rule description.
func (c Code) Title() string {
	return titles[c]
}

// Codes lists every rule in order.
func Codes() []Code {
	return []Code{CodeNotExtensible, CodeNoEligibleFields, CodeUnknownDependent, CodeStaticField, CodeReadOnlyField}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Pos      host.Position
	// Type is the scope-qualified name of the type concerned.
	Type string
	// Field is the storage field concerned, if any.
	Field string
}

func (d Diagnostic) String() string {
	return Plain(d)
}

// IsError reports whether the diagnostic prevents generation.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

func newDiagnostic(code Code, t host.Type, pos host.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: code.Severity(),
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Type:     t.QualifiedName(),
	}
}

// Plain renders a diagnostic the way compilers do, for logs and editors.
func Plain(d Diagnostic) string {
	return fmt.Sprintf("%s: %s %s: %s", d.Pos, d.Severity, d.Code, d.Message)
}

// Format renders a diagnostic with terminal colours.
func Format(d Diagnostic) string {
	var sev string
	switch d.Severity {
	case SeverityError:
		sev = pterm.Red(string(d.Severity))
	case SeverityWarning:
		sev = pterm.Yellow(string(d.Severity))
	case SeverityInfo:
		sev = pterm.Blue(string(d.Severity))
	default:
		sev = string(d.Severity)
	}
	return fmt.Sprintf("%s: %s %s: %s", pterm.LightCyan(d.Pos.String()), sev, pterm.Bold.Sprint(string(d.Code)), d.Message)
}

// Sort orders diagnostics by file, line, column, then code.
func Sort(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		return cmp.Or(
			strings.Compare(a.Pos.File, b.Pos.File),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
			strings.Compare(string(a.Code), string(b.Code)),
			strings.Compare(a.Message, b.Message),
		)
	})
}

// Count tallies diagnostics by severity.
func Count(ds []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, d := range ds {
		counts[d.Severity]++
	}
	return counts
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(ds []Diagnostic) bool {
	return slices.ContainsFunc(ds, Diagnostic.IsError)
}
