package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsBuckets(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeUnbridgeableMember, "dropped", "p.T", "Bad")
	assert.True(t, d.IsValid())

	d.AddError(CodeUnbridgeableType, "no good", "p.U", "")
	assert.True(t, d.HasErrors())
	require.Error(t, d.Error())
	assert.Contains(t, d.Error().Error(), "no good")

	d.AddInfo(CodeNativeRoot, "skipped", "int", "")
	assert.Len(t, d.All(), 3)

	// Errors first, then warnings, then infos.
	assert.Equal(t, SeverityError, d.All()[0].Severity)
	assert.Equal(t, SeverityInfo, d.All()[2].Severity)
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics

	a.AddError(CodeUnbridgeableType, "x", "p.A", "")
	b.AddError(CodeUnbridgeableType, "y", "p.B", "")
	b.AddWarning(CodeUnbridgeableMember, "z", "p.B", "M")

	a.Merge(b)
	assert.Len(t, a.Errors, 2)
	assert.Len(t, a.Warnings, 1)
}

func TestDiagnosticsSort(t *testing.T) {
	var d Diagnostics

	d.AddError(CodeUnbridgeableType, "1", "p.B", "")
	d.AddError(CodeUnbridgeableMember, "2", "p.A", "N")
	d.AddError(CodeUnbridgeableReference, "3", "p.A", "M")

	d.Sort()

	assert.Equal(t, "p.A", d.Errors[0].TypeKey)
	assert.Equal(t, "M", d.Errors[0].Member)
	assert.Equal(t, "N", d.Errors[1].Member)
	assert.Equal(t, "p.B", d.Errors[2].TypeKey)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     CodeUnbridgeableMember,
		Message:  "dropped",
		TypeKey:  "p.T",
		Member:   "Bad",
	}

	assert.Equal(t, "[p.T] Bad: [unbridgeable_member] dropped", d.String())

	bare := Diagnostic{Message: "plain"}
	assert.Equal(t, "plain", bare.String())
}
