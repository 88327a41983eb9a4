package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/stdgp/pkg/pool"
	"github.com/wildfunctions/stdgp/pkg/strategy"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available operator pools and selection strategies",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pools:      %s\n", strings.Join(pool.Names(), ", "))
			fmt.Fprintf(w, "strategies: %s\n", strings.Join(strategy.Names(), ", "))
		},
	}
}
