package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/benchkit/internal/workload"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in workloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range workload.Names() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
