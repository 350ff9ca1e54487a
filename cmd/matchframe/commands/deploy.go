package commands

import (
	"github.com/spf13/cobra"

	"github.com/matchframe/matchframe/cmd/matchframe/handlers"
)

// Deploy returns the command for redeploying to existing infrastructure.
//
// It rebuilds and pushes the image, then restarts the container on the
// instance recorded in deploy.env, without touching any other resource.
func Deploy() *cobra.Command {
	var configPath string
	var outputsPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Rebuild and redeploy to already-provisioned infrastructure",
		Long: `Rebuild the application image and redeploy it.

This command skips provisioning entirely. It reads the instance and
repository from the outputs file a previous 'matchframe up' wrote,
rebuilds the image, pushes it, and replaces the running container.

Examples:
  # Redeploy after a code change
  matchframe deploy

  # Redeploy using an alternate outputs file
  matchframe deploy --outputs staging.env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, outputsPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: matchframe.yaml)")
	cmd.Flags().StringVar(&outputsPath, "outputs", "", "Path to outputs file (default: deploy.env)")

	return cmd
}
