package commands

import (
	"github.com/spf13/cobra"

	"github.com/matchframe/matchframe/cmd/matchframe/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes the provisioned AWS resources in reverse
// dependency order: instance, security group, key pair, and log group.
// The repository is kept unless --all is given.
func Destroy() *cobra.Command {
	var configPath string
	var removeRepository bool
	var purgeKey bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear down the provisioned AWS resources",
		Long: `Destroy removes the resources a provisioning run created.

Resources are deleted in reverse dependency order:
  - EC2 instance
  - Security group (retried while the instance releases it)
  - EC2 key pair
  - CloudWatch log group

The image repository is preserved by default; pass --all to delete it
together with every pushed image. Resources that are already gone are
skipped without error, so a partial teardown can be re-run.

Example:
  matchframe destroy
  matchframe destroy --all --purge-key

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath, handlers.DestroyOptions{
				RemoveRepository: removeRepository,
				PurgeLocalKey:    purgeKey,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: matchframe.yaml)")
	cmd.Flags().BoolVar(&removeRepository, "all", false, "Also delete the image repository and its images")
	cmd.Flags().BoolVar(&purgeKey, "purge-key", false, "Also remove the local private key file")

	return cmd
}
