// Package main provides the CLI entrypoint for bridgegen.
//
// bridgegen is a codegen tool that:
//   - Loads Go packages (go/types) and discovers every type reachable from
//     the configured bridge roots
//   - Resolves globally-unique bridge names across the whole discovered set
//   - Generates bridge types that forward every member across an isolation
//     boundary to a hidden wrapped instance
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "bridgegen",
		Short:         "generate boundary-crossing bridge types for Go",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
