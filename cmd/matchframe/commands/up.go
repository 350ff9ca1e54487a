package commands

import (
	"github.com/spf13/cobra"

	"github.com/matchframe/matchframe/cmd/matchframe/handlers"
)

// Up returns the command for the full provision-and-deploy run.
//
// It handles the complete lifecycle: preflight checks, registry,
// security group, key pair, instance, log group, image build and push,
// and the remote container start.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect matchframe.yaml)
//	--skip-deploy: Provision infrastructure only
//
// Environment variables:
//
//	AWS_REGION: overrides the configured region
//	KEY_NAME:   overrides the configured key pair name
func Up() *cobra.Command {
	var configPath string
	var skipDeploy bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision infrastructure and deploy the application",
		Long: `Provision all AWS infrastructure and deploy the application.

Each step is idempotent: resources that already exist are reused, so
the command can be re-run safely after a failure or a code change.

The run writes its results to deploy.env (region, repository URI,
security group ID, instance ID, public IP). The file is rewritten on
every run and only ever reflects the latest one.

If no config file is specified, matchframe.yaml in the current
directory is used when present, otherwise built-in defaults apply.

Examples:
  # Provision and deploy with matchframe.yaml or defaults
  matchframe up

  # Provision and deploy with a specific config
  matchframe up -c production.yaml

  # Re-run after changing the application code
  matchframe up`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, skipDeploy)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: matchframe.yaml)")
	cmd.Flags().BoolVar(&skipDeploy, "skip-deploy", false, "Provision infrastructure only, skip image build and deploy")

	return cmd
}
