package gen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"derive-generator/internal/schema"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package name of schema-file output.
	PackageName string
	// OutputDir is where schema-file output is written.
	OutputDir string
	// FileSuffix is appended to the package name to form the file name.
	FileSuffix string
	// Runtime is the import path of the runtime helper package.
	Runtime string
	// EmitTypes renders type declarations for schema-file types.
	EmitTypes bool
	// EmitMethods renders forwarding methods for unconditional impls.
	EmitMethods bool
	// GenerateComments enables doc comments on generated functions.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        ".",
		FileSuffix:       "_derive.go",
		Runtime:          DefaultRuntimePath,
		EmitTypes:        true,
		EmitMethods:      true,
		GenerateComments: true,
	}
}

// Generator renders derive outputs into Go files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in; empty means the configured
	// output directory.
	Dir string
	// Filename is the name of the file (e.g., "shapes_derive.go").
	Filename string
	// Package is the Go package name of the file.
	Package string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the file's destination given the default output directory.
func (f GeneratedFile) Path(outputDir string) string {
	if f.Dir != "" {
		return filepath.Join(f.Dir, f.Filename)
	}

	return filepath.Join(outputDir, f.Filename)
}

type fileKey struct {
	dir, pkg string
}

// Generate renders outputs into one file per package and directory, in
// first-seen order.
func (g *Generator) Generate(outputs []*Output) ([]GeneratedFile, error) {
	var (
		keys   []fileKey
		groups = make(map[fileKey][]*Output)
	)

	for _, o := range outputs {
		k := fileKey{dir: o.Schema.Dir, pkg: g.packageName(o.Schema)}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], o)
	}

	files := make([]GeneratedFile, 0, len(keys))

	for _, k := range keys {
		file, err := g.generateFile(k, groups[k])
		if err != nil {
			return nil, fmt.Errorf("generating package %s: %w", k.pkg, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) packageName(t *schema.TypeSchema) string {
	if t.Origin == schema.OriginSchemaFile && g.config.PackageName != "" {
		return g.config.PackageName
	}

	return t.Package
}

func (g *Generator) filename(pkg string) string {
	suffix := g.config.FileSuffix
	if suffix == "" {
		suffix = "_derive.go"
	}

	return strings.ToLower(pkg) + suffix
}

func (g *Generator) generateFile(k fileKey, outputs []*Output) (*GeneratedFile, error) {
	f := jen.NewFile(k.pkg)
	f.HeaderComment("Code generated by derive-generator. DO NOT EDIT.")
	f.NoFormat = true

	for _, o := range outputs {
		if g.config.EmitTypes && o.Schema.Origin == schema.OriginSchemaFile {
			declareType(f, o)
		}

		for _, impl := range o.Impls {
			g.renderImpl(f, o, impl)
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	file := &GeneratedFile{Dir: k.dir, Filename: g.filename(k.pkg), Package: k.pkg}
	path := file.Path(g.config.OutputDir)

	// Verbatim user constraints may reference packages jennifer does not
	// know about; imports.Process adds them and formats the result.
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		_ = writeDebugUnformatted(filepath.Dir(path), file.Filename, buf.Bytes())

		return nil, fmt.Errorf("formatting %s: %w", file.Filename, err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) renderImpl(f *jen.File, o *Output, impl *Impl) {
	target := o.Target

	if g.config.GenerateComments {
		f.Comment(implComment(o, impl))
	}

	f.Func().Id(impl.Func).Add(impl.Clause.Render()).
		Params(impl.Params...).
		Add(results(impl.Results)).
		Block(impl.Body...)
	f.Line()

	if impl.IsMarker() || !impl.Unconditional || !g.config.EmitMethods {
		return
	}

	call := jen.Id(impl.Func).Call(impl.Args...)

	var body jen.Code = jen.Return(call)
	if len(impl.Results) == 0 {
		body = call
	}

	if g.config.GenerateComments {
		f.Commentf("%s calls %s.", impl.Method, impl.Func)
	}

	f.Func().Params(jen.Id(selfParam).Add(target.Type())).Id(impl.Method).
		Params(impl.MethodParams...).
		Add(results(impl.Results)).
		Block(body)
	f.Line()
}

func results(rs []jen.Code) jen.Code {
	switch len(rs) {
	case 0:
		return jen.Null()
	case 1:
		return rs[0]
	default:
		return jen.Params(rs...)
	}
}

var implComments = map[string]string{
	"Clone":          "returns a deep copy of v.",
	"AssertCopy":     "asserts at compile time that %s may be copied by value.",
	"GoString":       "renders v for debugging.",
	"AssertEq":       "asserts at compile time that %s has a total equality.",
	"Hash":           "writes v into h.",
	"Compare":        "orders v against other following the cmp.Compare convention.",
	"Equal":          "reports whether v and other are structurally equal.",
	"PartialCompare": "orders v against other; the boolean is false when they are unordered.",
}

func implComment(o *Output, impl *Impl) string {
	prefix := Describe(impl.Capability).FuncPrefix
	text := implComments[prefix]

	if strings.Contains(text, "%s") {
		text = fmt.Sprintf(text, o.Schema.Name)
	}

	return impl.Func + " " + text
}

// SortOutputs orders outputs by package, then type name.
func SortOutputs(outputs []*Output) {
	slices.SortStableFunc(outputs, func(a, b *Output) int {
		if c := strings.Compare(a.Schema.Package, b.Schema.Package); c != 0 {
			return c
		}

		return strings.Compare(a.Schema.Name, b.Schema.Name)
	})
}
