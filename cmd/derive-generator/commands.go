package main

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"derive-generator/internal/gen"
	"derive-generator/internal/schemafile"
)

// genFlags override the configuration file when set.
type genFlags struct {
	out        string
	pkg        string
	suffix     string
	runtime    string
	jobs       int
	noTypes    bool
	noMethods  bool
	noComments bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.out, "out", "o", "", "output directory for schema-file types")
	fs.StringVar(&f.pkg, "package", "", "package name of schema-file output")
	fs.StringVar(&f.suffix, "suffix", "", "generated file name suffix")
	fs.StringVar(&f.runtime, "runtime", "", "import path of the runtime helper package")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "inputs processed concurrently")
	fs.BoolVar(&f.noTypes, "no-types", false, "do not declare schema-file types")
	fs.BoolVar(&f.noMethods, "no-methods", false, "do not emit forwarding methods")
	fs.BoolVar(&f.noComments, "no-comments", false, "do not emit doc comments")
}

// apply copies the flags the user set into the configuration.
func (f *genFlags) apply(cmd *cobra.Command, a *app) {
	fs := cmd.Flags()
	c := a.cfg

	if fs.Changed("out") {
		c.Output.Dir = f.out
	}

	if fs.Changed("package") {
		c.Output.PackageName = f.pkg
	}

	if fs.Changed("suffix") {
		c.Output.FileSuffix = f.suffix
	}

	if fs.Changed("runtime") {
		c.Runtime = f.runtime
	}

	if fs.Changed("jobs") {
		c.Jobs = f.jobs
	}

	if f.noTypes {
		c.Output.EmitTypes = false
	}

	if f.noMethods {
		c.Output.EmitMethods = false
	}

	if f.noComments {
		c.Output.Comments = false
	}
}

func newGenCmd(a *app) *cobra.Command {
	var flags genFlags

	cmd := &cobra.Command{
		Use:   "gen [packages or schema files...]",
		Short: "Generate derive functions",
		Example: `  derive-generator gen ./shapes
  derive-generator gen -o ./shapes shapes.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, a)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			_, err := a.generate(cmd.Context(), args)

			return err
		},
	}

	flags.register(cmd)

	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages or schema files...]",
		Short: "Validate directives and shapes without writing files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := a.loadSchemas(cmd.Context(), args)
			if err != nil {
				return err
			}

			outputs, diags := a.deriveAll(schemas)
			gen.SortOutputs(outputs)

			for _, o := range outputs {
				fmt.Fprintf(a.out, "ok    %s\n", o)
			}

			for _, d := range diags.Errors {
				fmt.Fprintf(a.out, "FAIL  %s\n", d)
			}

			if diags.HasErrors() {
				return fmt.Errorf("%d of %d types failed", len(diags.Errors), len(schemas))
			}

			a.logger.Debug("check passed", zap.Int("types", len(outputs)))

			return nil
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "dump [packages or schema files...]",
		Short: "Print the type schemas the generator sees",
		Long: `Prints the loaded type schemas. With --yaml the schemas are written in schema
file form, which converts annotated Go structs into a starting schema file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := a.loadSchemas(cmd.Context(), args)
			if err != nil {
				return err
			}

			if !asYAML {
				cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				cs.Fdump(a.out, schemas)

				return nil
			}

			if len(schemas) == 0 {
				return errors.New("no types with derive directives found")
			}

			pkg := a.cfg.Output.PackageName
			if pkg == "" {
				pkg = schemas[0].Package
			}

			data, err := schemafile.Marshal(schemafile.FromSchemas(pkg, schemas))
			if err != nil {
				return err
			}

			_, err = a.out.Write(data)

			return err
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print in schema file form")

	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var flags genFlags

	cmd := &cobra.Command{
		Use:   "watch [packages or schema files...]",
		Short: "Regenerate whenever an input changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, a)
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			return a.watch(cmd.Context(), args)
		},
	}

	flags.register(cmd)

	return cmd
}
