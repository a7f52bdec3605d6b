package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/collect"
	"bridge-generator/internal/names"
	"bridge-generator/internal/proxy"
	"bridge-generator/internal/symquery"
)

var (
	intRef    = symquery.TypeRef{Identity: symquery.TypeIdentity{Name: "int"}}
	stringRef = symquery.TypeRef{Identity: symquery.TypeIdentity{Name: "string"}}
	errorRef  = symquery.TypeRef{Identity: symquery.TypeIdentity{Name: "error"}}

	basicID = symquery.TypeIdentity{PkgPath: "calc", Name: "Basic"}
	sciID   = symquery.TypeIdentity{PkgPath: "calc", Name: "Sci"}
)

// fixtureProxies runs the pipeline up to the emitter: a concrete Sci
// satisfying the Basic contract, with a property, a fallible method, a
// bridged result, and a native slice result.
func fixtureProxies(t *testing.T) []proxy.ProxyModel {
	t.Helper()

	addMember := symquery.MemberDescriptor{
		Name: "Add",
		Kind: symquery.MemberMethod,
		Params: []symquery.Param{
			{Name: "a", Type: intRef},
			{Name: "b", Type: intRef},
		},
		Results: []symquery.TypeRef{intRef},
	}

	facade := symquery.NewStatic()
	facade.Add(&symquery.TypeSymbol{
		Identity: basicID,
		Kind:     symquery.SymbolInterface,
		Members:  []symquery.MemberDescriptor{addMember},
	})
	facade.Add(&symquery.TypeSymbol{
		Identity: sciID,
		Kind:     symquery.SymbolStruct,
		Members: []symquery.MemberDescriptor{
			addMember,
			{
				Name:    "Record",
				Kind:    symquery.MemberMethod,
				Params:  []symquery.Param{{Name: "entry", Type: stringRef}},
				Results: []symquery.TypeRef{intRef, errorRef},
			},
			{
				Name:    "Clone",
				Kind:    symquery.MemberMethod,
				Results: []symquery.TypeRef{{Identity: sciID, Pointer: true}},
			},
			{
				Name:    "Tags",
				Kind:    symquery.MemberMethod,
				Results: []symquery.TypeRef{{Identity: stringRef.Identity, Slice: true}},
			},
			{
				Name:    "Precision",
				Kind:    symquery.MemberProperty,
				Results: []symquery.TypeRef{intRef},
			},
		},
		Contracts: []symquery.TypeIdentity{basicID},
	})

	collector := collect.NewCollector(analyze.NewAnalyzer(facade))

	universe, diags := collector.Collect([]symquery.TypeIdentity{sciID})
	require.False(t, diags.HasErrors())

	asg, err := names.Resolve(universe, nil)
	require.NoError(t, err)

	return proxy.Build(universe, asg, nil)
}

func generated(t *testing.T) map[string]string {
	t.Helper()

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(fixtureProxies(t))
	require.NoError(t, err)

	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Filename] = string(f.Content)
	}

	return out
}

func TestGenerateStructBridge(t *testing.T) {
	src, ok := generated(t)["sci_bridge.go"]
	require.True(t, ok)

	assert.Contains(t, src, "// Code generated by bridgegen. DO NOT EDIT.")
	assert.Contains(t, src, `"bridge-generator/boundary"`)

	assert.Contains(t, src, "type SciBridge struct {")
	assert.Contains(t, src, "func NewSciBridge(ref boundary.Ref) *SciBridge {")
	assert.Contains(t, src, "func (b *SciBridge) BoundaryRef() boundary.Ref {")

	// Contract fidelity is compile-checked in the output itself.
	assert.Contains(t, src, "var _ BasicBridge = (*SciBridge)(nil)")
}

func TestGenerateForwardingBodies(t *testing.T) {
	src := generated(t)["sci_bridge.go"]

	// No error channel on the original: boundary failures panic.
	assert.Contains(t, src, "func (b *SciBridge) Add(a int, a1 int) (out0 int) {")
	assert.Contains(t, src, `res := boundary.MustCall(b.ref, "Add", a, a1)`)

	// Original error channel carries boundary failures.
	assert.Contains(t, src, "func (b *SciBridge) Record(entry string) (out0 int, err error) {")
	assert.Contains(t, src, `res, callErr := b.ref.Call("Record", entry)`)

	// Bridged result is rewrapped through the factory.
	assert.Contains(t, src, "func (b *SciBridge) Clone() (out0 *SciBridge) {")
	assert.Contains(t, src, "out0 = NewSciBridge(boundary.Wrap(res[0]))")

	// Native result crosses by value.
	assert.Contains(t, src, "func (b *SciBridge) Tags() (out0 []string) {")
	assert.Contains(t, src, "out0 = res[0].([]string)")
}

func TestGenerateProperty(t *testing.T) {
	src := generated(t)["sci_bridge.go"]

	assert.Contains(t, src, "func (b *SciBridge) Precision() (out0 int) {")
	assert.Contains(t, src, `boundary.MustGet(b.ref, "Precision")`)
	assert.Contains(t, src, "func (b *SciBridge) SetPrecision(v int) {")
	assert.Contains(t, src, `boundary.MustSet(b.ref, "Precision", v)`)
}

func TestGenerateInterfaceBridge(t *testing.T) {
	src, ok := generated(t)["basic_bridge.go"]
	require.True(t, ok)

	assert.Contains(t, src, "type BasicBridge interface {")
	assert.Contains(t, src, "boundary.Wrapper")
	assert.Contains(t, src, "type basicBridgeImpl struct {")
	assert.Contains(t, src, "func NewBasicBridge(ref boundary.Ref) BasicBridge {")
	assert.Contains(t, src, "func (b *basicBridgeImpl) BoundaryRef() boundary.Ref {")
}

func TestGenerateDeterministic(t *testing.T) {
	first := generated(t)
	second := generated(t)

	assert.Equal(t, first, second)
}

func TestModelExportRoundTrip(t *testing.T) {
	proxies := fixtureProxies(t)

	data, err := EncodeModels(proxies)
	require.NoError(t, err)

	decoded, err := DecodeModels(data)
	require.NoError(t, err)
	assert.Equal(t, proxies, decoded)
}

func TestDecodeModelsRejectsUnknownVersion(t *testing.T) {
	data, err := EncodeModels(nil)
	require.NoError(t, err)

	// Valid payloads of a different version are refused, garbage fails outright.
	_, err = DecodeModels([]byte{0xc1})
	require.Error(t, err)

	decoded, err := DecodeModels(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
