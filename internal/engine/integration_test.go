package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/config"
	"bridge-generator/internal/gen"
	"bridge-generator/internal/symquery"
)

const examplesPkg = "bridge-generator/examples"

func examplesConfig() *config.Config {
	no := false

	return &config.Config{
		Version:  "1",
		Packages: []string{examplesPkg + "/..."},
		Roots: []config.RootSpec{
			{Type: examplesPkg + "/calc.Sci", ProxyName: "SciBridge", FactoryMethod: "NewSci"},
			{Type: examplesPkg + "/widgets/a.Widget", IncludeNested: &no},
			{Type: examplesPkg + "/widgets/b.Widget", IncludeNested: &no},
			{Type: examplesPkg + "/graph.Node", IncludeNested: &no},
		},
	}
}

func runExamples(t *testing.T) *Result {
	t.Helper()

	facade, err := symquery.LoadPackages(examplesPkg + "/...")
	require.NoError(t, err)

	result, err := Run(facade, examplesConfig())
	require.NoError(t, err)

	return result
}

func TestRunExamplesEndToEnd(t *testing.T) {
	result := runExamples(t)

	require.False(t, result.Diagnostics.HasErrors(),
		"examples are fully bridgeable: %v", result.Diagnostics.Errors)

	assert.Equal(t, []string{
		"BasicBridge",      // calc.Basic
		"HistoryBridge",    // calc.History
		"SciBridge",        // calc.Sci (explicit)
		"ScientificBridge", // calc.Scientific
		"ScriptedBridge",   // calc.Scripted, Add promoted from the embedded Basic
		"SessionBridge",    // calc.Session, via nested expansion
		"EdgeBridge",       // graph.Edge, reached through the cycle
		"NodeBridge",       // graph.Node
		"WidgetBridge",     // widgets/a.Widget keeps the simple name
		"BWidgetBridge",    // widgets/b.Widget takes the package prefix
	}, bridgeNames(result))
}

func TestRunExamplesDiamondContract(t *testing.T) {
	result := runExamples(t)

	var sci, scientific = -1, -1
	for i, p := range result.Proxies {
		switch p.Bridge {
		case "SciBridge":
			sci = i
		case "ScientificBridge":
			scientific = i
		}
	}

	require.GreaterOrEqual(t, sci, 0)
	require.GreaterOrEqual(t, scientific, 0)

	// Sci carries both contracts of the diamond exactly once.
	contracts := make([]string, 0, 2)
	for _, c := range result.Proxies[sci].Contracts {
		contracts = append(contracts, c.Bridge)
	}
	assert.Equal(t, []string{"BasicBridge", "ScientificBridge"}, contracts)

	assert.Equal(t, "NewSci", result.Proxies[sci].Factory)

	// The contract proxy forwards the full flattened member set.
	names := make([]string, 0, 2)
	for _, m := range result.Proxies[scientific].Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Add", "Square"}, names)
}

func TestRunExamplesGeneratesCompilableModels(t *testing.T) {
	result := runExamples(t)

	files, err := gen.NewGenerator(gen.DefaultGeneratorConfig()).Generate(result.Proxies)
	require.NoError(t, err, "every rendered bridge must survive gofmt")
	require.Len(t, files, len(result.Proxies))

	seen := make(map[string]bool)
	for _, f := range files {
		assert.False(t, seen[f.Filename], "artifact names must not collide: %s", f.Filename)
		seen[f.Filename] = true
	}
}

func TestRunExamplesDeterministicAcrossLoads(t *testing.T) {
	first := runExamples(t)
	second := runExamples(t)

	assert.Equal(t, bridgeNames(first), bridgeNames(second))
	assert.Equal(t, first.Proxies, second.Proxies)
	assert.Equal(t, first.Diagnostics.All(), second.Diagnostics.All())
}
