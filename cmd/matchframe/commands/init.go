package commands

import (
	"github.com/spf13/cobra"

	"github.com/matchframe/matchframe/cmd/matchframe/handlers"
)

// Init returns the command for creating a starter configuration.
//
// By default it runs an interactive wizard; with --yes it writes the
// built-in defaults without prompting.
//
// Flags:
//
//	--output, -o: Path to output file (default "matchframe.yaml")
//	--yes, -y: Skip the wizard and write defaults
func Init() *cobra.Command {
	var outputPath string
	var useDefaults bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a matchframe configuration file.

The interactive wizard asks about:

  - Application name
  - AWS region
  - Instance type
  - Port mapping

Every prompt is pre-filled with the default, so accepting everything
produces the same configuration a bare 'matchframe up' would use.
Use --yes to skip the wizard entirely.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "matchframe.yaml", "Output file path")
	cmd.Flags().BoolVarP(&useDefaults, "yes", "y", false, "Write defaults without prompting")

	return cmd
}
