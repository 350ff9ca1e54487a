package commands

import (
	"github.com/spf13/cobra"

	"github.com/matchframe/matchframe/cmd/matchframe/handlers"
)

// Doctor returns the command for diagnosing the local setup.
//
// It validates the configuration, checks local tooling, verifies AWS
// credentials, and summarizes the last recorded provisioning run.
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, tooling, and credentials",
		Long: `Diagnose the local matchframe setup.

Checks performed:
  - Configuration file loads and validates
  - Required and optional client tools are installed
  - AWS credentials resolve to a caller identity
  - The last provisioning run recorded in deploy.env, if any

Example:
  matchframe doctor`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: matchframe.yaml)")

	return cmd
}
