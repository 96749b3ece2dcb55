package main

import (
	"os"

	"github.com/checkhealth/goals/cmd/server/cmd"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Goals API server",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.Serve(c.Context())
		},
	}

	rootCmd.AddCommand(cmd.ServeCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
