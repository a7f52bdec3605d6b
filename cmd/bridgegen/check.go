package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "run a generation pass and report diagnostics without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, _, err := runPass(configPath)
			if err != nil {
				return err
			}

			printDiagnostics(&result.Diagnostics)

			if result.Diagnostics.HasErrors() {
				return fmt.Errorf("%d error(s)", len(result.Diagnostics.Errors))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d bridge(s), %d warning(s)\n",
				len(result.Proxies), len(result.Diagnostics.Warnings))

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "bridgegen.yaml", "path to the bridge declaration file")

	return cmd
}
