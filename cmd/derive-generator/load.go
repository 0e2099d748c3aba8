package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"derive-generator/internal/analyze"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/gen"
	"derive-generator/internal/schema"
	"derive-generator/internal/schemafile"
)

// input is one command-line argument: a schema file or a Go package pattern.
type input struct {
	arg        string
	schemaFile bool
}

func classifyInputs(args []string) []input {
	inputs := make([]input, len(args))
	for i, arg := range args {
		inputs[i] = input{arg: arg, schemaFile: isSchemaFile(arg)}
	}

	return inputs
}

func isSchemaFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// jobs converts the configured concurrency into an errgroup limit.
func (a *app) jobs() int {
	if a.cfg.Jobs <= 0 {
		return -1
	}

	return a.cfg.Jobs
}

// loadSchemas loads every input concurrently and returns the schemas in
// argument order. A type reached through two inputs is kept once.
func (a *app) loadSchemas(ctx context.Context, args []string) ([]*schema.TypeSchema, error) {
	inputs := classifyInputs(args)
	results := make([][]*schema.TypeSchema, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs())

	for i, in := range inputs {
		g.Go(func() error {
			schemas, err := a.loadInput(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.arg, err)
			}

			results[i] = schemas

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dedupe(slices.Concat(results...)), nil
}

func (a *app) loadInput(ctx context.Context, in input) ([]*schema.TypeSchema, error) {
	if !in.schemaFile {
		a.logger.Debug("loading packages", zap.String("pattern", in.arg))

		graph, err := analyze.NewAnalyzer().LoadPackages(ctx, in.arg)
		if err != nil {
			return nil, err
		}

		return graph.Schemas(), nil
	}

	a.logger.Debug("loading schema file", zap.String("path", in.arg))

	f, err := schemafile.LoadFile(in.arg)
	if err != nil {
		return nil, err
	}

	diags := schemafile.Validate(f)
	for _, w := range diags.Warnings {
		a.logger.Warn(w.Message, zap.String("file", in.arg), zap.String("code", w.Code))
	}

	if err := diags.Error(); err != nil {
		return nil, err
	}

	return schemafile.ToSchemas(f, in.arg)
}

func dedupe(schemas []*schema.TypeSchema) []*schema.TypeSchema {
	type key struct {
		origin         schema.Origin
		dir, pkg, name string
	}

	seen := make(map[key]bool, len(schemas))
	out := schemas[:0]

	for _, s := range schemas {
		k := key{s.Origin, s.Dir, s.Package, s.Name}
		if seen[k] {
			continue
		}

		seen[k] = true
		out = append(out, s)
	}

	return out
}

// deriveAll derives every schema concurrently. Failures are collected as
// diagnostics so one bad type does not hide the others.
func (a *app) deriveAll(schemas []*schema.TypeSchema) ([]*gen.Output, *diagnostic.Diagnostics) {
	outputs := make([]*gen.Output, len(schemas))
	errs := make([]error, len(schemas))
	opts := gen.Options{Runtime: a.cfg.Runtime}

	var g errgroup.Group
	g.SetLimit(a.jobs())

	for i, s := range schemas {
		g.Go(func() error {
			outputs[i], errs[i] = gen.Derive(s, opts)
			return nil
		})
	}

	_ = g.Wait()

	diags := &diagnostic.Diagnostics{}
	ok := outputs[:0]

	for i, s := range schemas {
		if errs[i] != nil {
			diags.AddErr(typeLabel(s), errs[i])
			continue
		}

		ok = append(ok, outputs[i])
	}

	return ok, diags
}

// typeLabel names a type together with where it was declared.
func typeLabel(s *schema.TypeSchema) string {
	if s.Pos == "" {
		return s.Name
	}

	return s.Name + " at " + s.Pos
}

func (a *app) logDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		a.logger.Warn(d.String())
	}

	for _, d := range diags.Errors {
		a.logger.Error(d.String(), zap.String("kind", d.Code))
	}
}

// generate runs the whole pipeline and writes the generated files.
func (a *app) generate(ctx context.Context, args []string) ([]string, error) {
	schemas, err := a.loadSchemas(ctx, args)
	if err != nil {
		return nil, err
	}

	if len(schemas) == 0 {
		a.logger.Warn("no types with derive directives found", zap.Strings("inputs", args))
		return nil, nil
	}

	outputs, diags := a.deriveAll(schemas)
	a.logDiagnostics(diags)

	if err := diags.Error(); err != nil {
		return nil, err
	}

	for _, o := range outputs {
		a.logger.Debug("derived", zap.String("type", o.String()))
	}

	files, err := gen.NewGenerator(a.cfg.Generator()).Generate(outputs)
	if err != nil {
		return nil, err
	}

	written, err := gen.WriteFiles(files, a.cfg.Output.Dir)
	if err != nil {
		return written, err
	}

	for _, path := range written {
		a.logger.Info("wrote file", zap.String("path", path))
	}

	return written, nil
}

// generatedFile reports whether path looks like generator output.
func (a *app) generatedFile(path string) bool {
	suffix := a.cfg.Output.FileSuffix
	if suffix == "" {
		suffix = gen.DefaultGeneratorConfig().FileSuffix
	}

	return strings.HasSuffix(path, suffix) || strings.HasSuffix(path, ".unformatted.go")
}
