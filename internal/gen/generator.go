package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"bridge-generator/internal/common"
	"bridge-generator/internal/proxy"
	"bridge-generator/internal/symquery"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// RuntimeImport is the import path of the boundary runtime.
	RuntimeImport string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "bridges",
		OutputDir:        "./generated",
		RuntimeImport:    "bridge-generator/boundary",
		GenerateComments: true,
	}
}

// Generator renders proxy models into Go source files.
type Generator struct {
	config GeneratorConfig

	// kinds and factories index the whole pass output so cross-references
	// render with the right shape (interface value vs. pointer to struct).
	kinds     map[string]symquery.SymbolKind
	factories map[string]string
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "widget_bridge.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders every proxy model. Returns one file per artifact
// identifier; identifiers are collision-free because bridge names are.
func (g *Generator) Generate(proxies []proxy.ProxyModel) ([]GeneratedFile, error) {
	g.kinds = make(map[string]symquery.SymbolKind, len(proxies))
	g.factories = make(map[string]string, len(proxies))

	for _, p := range proxies {
		g.kinds[p.Bridge] = p.Kind
		g.factories[p.Bridge] = p.Factory
	}

	files := make([]GeneratedFile, 0, len(proxies))

	for i := range proxies {
		file, err := g.generateProxy(&proxies[i])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", proxies[i].Bridge, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

var fileTmpl = template.Must(template.New("bridge").Parse(`// Code generated by bridgegen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

{{.Body}}
`))

type fileData struct {
	Package string
	Imports []string
	Body    string
}

func (g *Generator) generateProxy(p *proxy.ProxyModel) (*GeneratedFile, error) {
	b := &bodyWriter{gen: g, imports: map[string]bool{g.config.RuntimeImport: true}}

	if p.Kind == symquery.SymbolInterface {
		b.writeInterfaceBridge(p)
	} else {
		b.writeStructBridge(p)
	}

	imports := make([]string, 0, len(b.imports))
	for path := range b.imports {
		imports = append(imports, fmt.Sprintf("%q", path))
	}

	sort.Strings(imports)

	var buf bytes.Buffer

	err := fileTmpl.Execute(&buf, fileData{
		Package: g.config.PackageName,
		Imports: imports,
		Body:    strings.TrimRight(b.sb.String(), "\n"),
	})
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting source: %w\n%s", err, buf.String())
	}

	return &GeneratedFile{
		Filename: p.Artifact + ".go",
		Content:  formatted,
	}, nil
}

// bodyWriter accumulates the declarations of one bridge file.
type bodyWriter struct {
	gen     *Generator
	sb      strings.Builder
	imports map[string]bool
}

func (b *bodyWriter) pf(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
}

// writeStructBridge emits a concrete bridge: a struct holding the boundary
// ref, its factory, and one forwarding member per directive.
func (b *bodyWriter) writeStructBridge(p *proxy.ProxyModel) {
	if b.gen.config.GenerateComments {
		b.pf("// %s forwards calls across the boundary to a wrapped %s.\n", p.Bridge, p.Original.Key())
	}

	b.pf("type %s struct {\n\tref boundary.Ref\n}\n\n", p.Bridge)

	b.pf("// %s wraps a boundary ref in a %s.\nfunc %s(ref boundary.Ref) *%s {\n\treturn &%s{ref: ref}\n}\n\n",
		p.Factory, p.Bridge, p.Factory, p.Bridge, p.Bridge)

	b.pf("// BoundaryRef implements boundary.Wrapper.\nfunc (b *%s) BoundaryRef() boundary.Ref {\n\tif b == nil {\n\t\treturn nil\n\t}\n\treturn b.ref\n}\n\n", p.Bridge)

	for _, c := range p.Contracts {
		if c.Bridge == "" || c.Bridge == p.Bridge {
			continue
		}

		b.pf("var _ %s = (*%s)(nil)\n", c.Bridge, p.Bridge)
	}

	b.pf("\n")

	recv := fmt.Sprintf("b *%s", p.Bridge)
	for i := range p.Members {
		b.writeMember(recv, &p.Members[i])
	}
}

// writeInterfaceBridge emits a contract bridge: the bridged interface plus a
// hidden forwarding implementation.
func (b *bodyWriter) writeInterfaceBridge(p *proxy.ProxyModel) {
	if b.gen.config.GenerateComments {
		b.pf("// %s is the boundary-side contract surface of %s.\n", p.Bridge, p.Original.Key())
	}

	b.pf("type %s interface {\n\tboundary.Wrapper\n", p.Bridge)

	for i := range p.Members {
		m := &p.Members[i]
		b.pf("\t%s(%s)%s\n", m.Name, b.paramList(m), b.resultList(m))
	}

	b.pf("}\n\n")

	impl := implName(p.Bridge)

	b.pf("type %s struct {\n\tref boundary.Ref\n}\n\n", impl)

	b.pf("// %s wraps a boundary ref in a forwarding %s.\nfunc %s(ref boundary.Ref) %s {\n\treturn &%s{ref: ref}\n}\n\n",
		p.Factory, p.Bridge, p.Factory, p.Bridge, impl)

	b.pf("func (b *%s) BoundaryRef() boundary.Ref {\n\tif b == nil {\n\t\treturn nil\n\t}\n\treturn b.ref\n}\n\n", impl)

	recv := fmt.Sprintf("b *%s", impl)
	for i := range p.Members {
		b.writeMember(recv, &p.Members[i])
	}
}

// writeMember emits one forwarding member.
func (b *bodyWriter) writeMember(recv string, m *proxy.Forwarding) {
	if m.Kind == symquery.MemberProperty {
		b.writeProperty(recv, m)
		return
	}

	if b.gen.config.GenerateComments && m.Scope != nil {
		b.pf("// %s satisfies %s on the original type.\n", m.Name, m.Scope.Original.Key())
	}

	b.pf("func (%s) %s(%s)%s {\n", recv, m.Name, b.paramList(m), b.resultList(m))
	b.writeCallBody(m)
	b.pf("}\n\n")
}

// writeCallBody emits the forwarding statements for a method-like member.
func (b *bodyWriter) writeCallBody(m *proxy.Forwarding) {
	args := b.argExprs(m)
	hasErr := len(m.Results) > 0 && isErrorRef(m.Results[len(m.Results)-1])

	plain := m.Results
	if hasErr {
		plain = m.Results[:len(m.Results)-1]
	}

	call := fmt.Sprintf("b.ref.Call(%q%s)", m.Name, args)

	switch {
	case hasErr && len(plain) == 0:
		b.pf("\t_, err := %s\n\treturn err\n", call)

	case hasErr:
		b.pf("\tres, callErr := %s\n\tif callErr != nil {\n\t\terr = callErr\n\t\treturn\n\t}\n", call)
		b.writeResultAssignments(plain)
		b.pf("\treturn\n")

	case len(plain) == 0:
		b.pf("\tboundary.MustCall(b.ref, %q%s)\n", m.Name, args)

	default:
		b.pf("\tres := boundary.MustCall(b.ref, %q%s)\n", m.Name, args)
		b.writeResultAssignments(plain)
		b.pf("\treturn\n")
	}
}

func (b *bodyWriter) writeResultAssignments(results []proxy.Ref) {
	for i, r := range results {
		src := fmt.Sprintf("res[%d]", i)

		switch {
		case r.Bridged() && r.Slice:
			b.pf("\tfor _, item := range boundary.Slice(%s) {\n\t\tout%d = append(out%d, %s(boundary.Wrap(item)))\n\t}\n",
				src, i, i, b.gen.factories[r.Bridge])

		case r.Bridged():
			b.pf("\tout%d = %s(boundary.Wrap(%s))\n", i, b.gen.factories[r.Bridge], src)

		default:
			b.pf("\tif %s != nil {\n\t\tout%d = %s.(%s)\n\t}\n", src, i, src, b.typeExpr(r, false))
		}
	}
}

// writeProperty emits a getter and a setter forwarding through Get/Set.
func (b *bodyWriter) writeProperty(recv string, m *proxy.Forwarding) {
	ref := m.Results[0]
	expr := b.typeExpr(ref, false)

	b.pf("func (%s) %s() (out0 %s) {\n", recv, m.Name, expr)

	switch {
	case ref.Bridged() && ref.Slice:
		b.pf("\tfor _, item := range boundary.Slice(boundary.MustGet(b.ref, %q)) {\n\t\tout0 = append(out0, %s(boundary.Wrap(item)))\n\t}\n",
			m.Name, b.gen.factories[ref.Bridge])

	case ref.Bridged():
		b.pf("\tout0 = %s(boundary.Wrap(boundary.MustGet(b.ref, %q)))\n", b.gen.factories[ref.Bridge], m.Name)

	default:
		b.pf("\tif v := boundary.MustGet(b.ref, %q); v != nil {\n\t\tout0 = v.(%s)\n\t}\n", m.Name, expr)
	}

	b.pf("\treturn\n}\n\n")

	b.pf("func (%s) Set%s(v %s) {\n", recv, m.Name, expr)

	switch {
	case ref.Bridged() && ref.Slice:
		b.pf("\tboundary.MustSet(b.ref, %q, boundary.UnwrapSlice(v))\n", m.Name)

	case ref.Bridged():
		b.pf("\tboundary.MustSet(b.ref, %q, boundary.Unwrap(v))\n", m.Name)

	default:
		b.pf("\tboundary.MustSet(b.ref, %q, v)\n", m.Name)
	}

	b.pf("}\n\n")
}

// paramList renders the parameter list of a member.
func (b *bodyWriter) paramList(m *proxy.Forwarding) string {
	parts := make([]string, 0, len(m.Params))

	for i, p := range m.Params {
		expr := b.typeExpr(p.Ref, m.Variadic && i == len(m.Params)-1)
		parts = append(parts, paramName(p.Name, i)+" "+expr)
	}

	return strings.Join(parts, ", ")
}

// resultList renders the result list, naming plain results out0..outN so
// forwarding bodies can assign them.
func (b *bodyWriter) resultList(m *proxy.Forwarding) string {
	if len(m.Results) == 0 {
		return ""
	}

	hasErr := isErrorRef(m.Results[len(m.Results)-1])

	parts := make([]string, 0, len(m.Results))

	for i, r := range m.Results {
		if hasErr && i == len(m.Results)-1 {
			parts = append(parts, "err error")
			continue
		}

		parts = append(parts, fmt.Sprintf("out%d %s", i, b.typeExpr(r, false)))
	}

	if hasErr && len(m.Results) == 1 {
		return " error"
	}

	return " (" + strings.Join(parts, ", ") + ")"
}

// argExprs renders the forwarded argument expressions, unwrapping bridges.
func (b *bodyWriter) argExprs(m *proxy.Forwarding) string {
	var sb strings.Builder

	for i, p := range m.Params {
		name := paramName(p.Name, i)

		switch {
		case p.Ref.Bridged() && p.Ref.Slice:
			sb.WriteString(", boundary.UnwrapSlice(" + name + ")")

		case p.Ref.Bridged():
			sb.WriteString(", boundary.Unwrap(" + name + ")")

		default:
			sb.WriteString(", " + name)
		}
	}

	return sb.String()
}

// typeExpr renders the Go type expression for a rewritten reference.
func (b *bodyWriter) typeExpr(r proxy.Ref, variadic bool) string {
	var sb strings.Builder

	if r.Slice {
		if variadic {
			sb.WriteString("...")
		} else {
			sb.WriteString("[]")
		}
	}

	if r.Bridged() {
		if b.gen.kinds[r.Bridge] != symquery.SymbolInterface {
			sb.WriteString("*")
		}

		sb.WriteString(r.Bridge)

		return sb.String()
	}

	if r.Pointer {
		sb.WriteString("*")
	}

	if r.Original.PkgPath != "" {
		b.imports[r.Original.PkgPath] = true
		sb.WriteString(common.PkgAlias(r.Original.PkgPath))
		sb.WriteString(".")
	}

	sb.WriteString(r.Original.Name)

	return sb.String()
}

func isErrorRef(r proxy.Ref) bool {
	return !r.Bridged() && !r.Slice && !r.Pointer &&
		r.Original.PkgPath == "" && r.Original.Name == "error"
}

func paramName(name string, i int) string {
	switch name {
	case "", "_", "b", "res", "err", "callErr", "v", "item":
		return fmt.Sprintf("a%d", i)
	}

	return name
}

func implName(bridge string) string {
	return strings.ToLower(bridge[:1]) + bridge[1:] + "Impl"
}
