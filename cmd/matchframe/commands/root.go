// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the matchframe CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchframe",
		Short: "Provision AWS infrastructure and deploy a containerized app",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Up())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
