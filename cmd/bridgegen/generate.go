package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"bridge-generator/internal/config"
	"bridge-generator/internal/engine"
	"bridge-generator/internal/gen"
	"bridge-generator/internal/symquery"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		modelOut   string
		dump       bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "run a generation pass and write bridge source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, cfg, err := runPass(configPath)
			if err != nil {
				return err
			}

			printDiagnostics(&result.Diagnostics)

			if dump {
				spew.Fdump(cmd.ErrOrStderr(), result.Proxies)
			}

			generator := gen.NewGenerator(gen.GeneratorConfig{
				PackageName:      cfg.Output.Package,
				OutputDir:        cfg.Output.Dir,
				RuntimeImport:    "bridge-generator/boundary",
				GenerateComments: true,
			})

			files, err := generator.Generate(result.Proxies)
			if err != nil {
				return fmt.Errorf("rendering bridges: %w", err)
			}

			if err := gen.WriteFiles(files, cfg.Output.Dir); err != nil {
				return err
			}

			if modelOut != "" {
				if err := gen.WriteModels(result.Proxies, modelOut); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %d bridge(s) in %s\n", len(files), cfg.Output.Dir)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bridgegen.yaml", "path to the bridge declaration file")
	cmd.Flags().StringVar(&modelOut, "model-out", "", "also write the msgpack model export to this path")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the proxy models to stderr")

	return cmd
}

// runPass loads the config, loads its packages, and runs one engine pass.
func runPass(configPath string) (*engine.Result, *config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, err
	}

	facade, err := symquery.LoadPackages(cfg.Packages...)
	if err != nil {
		return nil, nil, err
	}

	result, err := engine.Run(facade, cfg)
	if err != nil {
		printDiagnostics(&result.Diagnostics)
		return nil, nil, err
	}

	return result, cfg, nil
}
