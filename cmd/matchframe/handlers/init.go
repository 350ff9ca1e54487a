package handlers

import (
	"context"
	"fmt"

	"github.com/matchframe/matchframe/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeStarterConfig writes the configuration file.
	writeStarterConfig = config.WriteStarter
)

// Init creates a configuration file, either through the interactive
// wizard or, with useDefaults, straight from the built-in defaults.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	console := newConsole()

	var cfg *config.Config
	if useDefaults {
		cfg = config.Default()
	} else {
		console.Title("matchframe configuration")
		var err error
		cfg, err = runWizard(ctx)
		if err != nil {
			return err
		}
	}

	if err := writeStarterConfig(outputPath, cfg); err != nil {
		return err
	}

	console.Success("Configuration saved to %s", outputPath)
	console.Info("App:    %s", cfg.AppName)
	console.Info("Region: %s", cfg.Region)
	console.Info("Ports:  %d -> %d", cfg.Container.HostPort, cfg.Container.ContainerPort)
	fmt.Println()
	console.Info("Next: matchframe up")
	return nil
}
