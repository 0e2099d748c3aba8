package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"derive-generator/internal/common"
	"derive-generator/internal/match"
	"derive-generator/internal/schema"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DirectivePrefix starts the doc comment line that selects a type.
const DirectivePrefix = "//derive:"

// TagKey is the struct tag key read for skip options.
const TagKey = "derive"

// Analyzer loads Go packages and collects annotated types.
type Analyzer struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir   string
	graph *TypeGraph
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
	}
}

// LoadPackages loads the specified packages and collects their annotated
// types. Patterns are standard Go package patterns (e.g., "./shapes").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage walks the package's type declarations in source order.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if _, ok := a.graph.Packages[pkg.PkgPath]; ok {
		return nil
	}

	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	stringer := NewTypeStringer(pkg.Types)

	var errs []error

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && common.IsSingle(gen.Specs) {
					doc = gen.Doc
				}

				directive, ok := findDirective(doc)
				if !ok {
					continue
				}

				info, err := a.analyzeType(pkg, stringer, ts, directive)
				if err != nil {
					errs = append(errs, err)
					continue
				}

				a.graph.Types[info.ID] = info
				pkgInfo.Types = append(pkgInfo.Types, info.ID)
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
	a.graph.Order = append(a.graph.Order, pkg.PkgPath)

	return nil
}

// findDirective returns the text of the first directive line in doc. The
// raw comment list is read because CommentGroup.Text drops directives.
func findDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}

	for _, c := range doc.List {
		if rest, ok := strings.CutPrefix(c.Text, DirectivePrefix); ok {
			return strings.TrimSpace(rest), true
		}
	}

	return "", false
}

// analyzeType builds the TypeInfo of one annotated declaration.
func (a *Analyzer) analyzeType(pkg *packages.Package, stringer *TypeStringer, ts *ast.TypeSpec, directive string) (*TypeInfo, error) {
	pos := pkg.Fset.Position(ts.Name.Pos())

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj.IsAlias() {
		return nil, fmt.Errorf("%s: %s: derive directive on a type alias", pos, ts.Name.Name)
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s: %s: unexpected type %s", pos, ts.Name.Name, obj.Type())
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%s: %s: derive directive on a non-struct type (%s)",
			pos, ts.Name.Name, stringer.TypeString(named.Underlying()))
	}

	info := &TypeInfo{
		ID:        TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		Directive: directive,
		Pos:       pos,
	}

	tparams := named.TypeParams()
	for i := range tparams.Len() {
		tp := tparams.At(i)
		info.Generics = append(info.Generics, schema.Generic{
			Name:       tp.Obj().Name(),
			Constraint: stringer.Constraint(tp),
		})
	}

	if err := a.analyzeStructFields(st, stringer, info); err != nil {
		return nil, fmt.Errorf("%s: %w", pos, err)
	}

	return info, nil
}

// analyzeStructFields extracts fields from a struct type. Blank fields
// cannot be selected and are left out.
func (a *Analyzer) analyzeStructFields(st *types.Struct, stringer *TypeStringer, info *TypeInfo) error {
	path := NewTypePath(info.ID.Name)

	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" {
			continue
		}

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Type:     stringer.TypeString(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		}

		if fieldInfo.HasTag(TagKey) {
			skip, err := ParseSkipTag(fieldInfo.GetTag(TagKey))
			if err != nil {
				return fmt.Errorf("%s: %w", path.Field(field.Name()), err)
			}

			fieldInfo.Skip = skip
		}

		info.Fields = append(info.Fields, fieldInfo)
	}

	return nil
}

// ParseSkipTag parses the value of a derive struct tag: "skip" excludes the
// field from every group, "skip(Debug)" and "skip(EqHashOrd)" from one, and
// "skip(Debug, EqHashOrd)" from both.
func ParseSkipTag(tag string) (schema.SkipSet, error) {
	tag = strings.TrimSpace(tag)
	if tag == "skip" {
		return schema.SkipAll, nil
	}

	inner, ok := strings.CutPrefix(tag, "skip(")
	if !ok {
		return 0, fmt.Errorf("invalid derive tag %q: want skip or skip(<group>, ...)", tag)
	}

	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return 0, fmt.Errorf("invalid derive tag %q: missing )", tag)
	}

	var set schema.SkipSet

	for _, name := range strings.Split(inner, ",") {
		group, ok := schema.ParseSkipGroup(name)
		if !ok {
			groups := []string{schema.SkipGroupDebug, schema.SkipGroupCompare}
			name = strings.TrimSpace(name)

			return 0, fmt.Errorf("invalid derive tag %q: unknown skip group %q (want %s or %s)%s",
				tag, name, schema.SkipGroupDebug, schema.SkipGroupCompare, match.Hint(name, groups))
		}

		set |= group
	}

	return set, nil
}

// GetStruct returns the TypeInfo of an annotated struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	return info, nil
}
