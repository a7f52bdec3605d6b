package diagnostic

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bridge-generator/internal/common"
)

// Stable diagnostic codes. Codes are part of the tool's output contract:
// callers match on them, so they never change meaning between releases.
const (
	CodeUnresolvableRoot      = "unresolvable_root"
	CodeUnbridgeableType      = "unbridgeable_type"
	CodeUnbridgeableMember    = "unbridgeable_member"
	CodeUnbridgeableReference = "unbridgeable_reference"
	CodeNativeRoot            = "native_root"
	CodeExplicitNameConflict  = "explicit_name_conflict"
	CodeFactoryConflict       = "factory_conflict"
	CodeNameInvariant         = "name_invariant_violation"
)

// Diagnostics holds all diagnostic information from a generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this class of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeKey identifies the offending type (canonical identity key), if any.
	TypeKey string
	// Member identifies the offending member within TypeKey, if any.
	Member string
	// Location is an opaque source-location token supplied by the caller.
	// The engine only forwards it.
	Location string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeKey, member string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		TypeKey:  typeKey,
		Member:   member,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeKey, member string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		TypeKey:  typeKey,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeKey, member string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		TypeKey:  typeKey,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Sort orders every bucket by type key, then member, then code. Two passes
// over identical input must report diagnostics in identical order, so every
// consumer-visible list goes through here before it leaves the engine.
func (d *Diagnostics) Sort() {
	for _, bucket := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].TypeKey != bucket[j].TypeKey {
				return bucket[i].TypeKey < bucket[j].TypeKey
			}

			if bucket[i].Member != bucket[j].Member {
				return bucket[i].Member < bucket[j].Member
			}

			return bucket[i].Code < bucket[j].Code
		})
	}
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Infos...)

	return out
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeKey != "" {
		prefix = append(prefix, "["+d.TypeKey+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
