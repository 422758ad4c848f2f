package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const ServiceName = "bistro"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           ServiceName,
		Short:         "Restaurant reservations and newsletter API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}
