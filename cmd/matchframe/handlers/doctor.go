package handlers

import (
	"context"
	"os"

	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/ui"
	"github.com/matchframe/matchframe/internal/util/prerequisites"
)

// checkAllTools checks all known tools - can be replaced in tests.
var checkAllTools = prerequisites.CheckAll

// Doctor diagnoses the local setup: configuration, tooling, AWS
// credentials, and the last recorded provisioning run.
func Doctor(ctx context.Context, configPath string) error {
	console := newConsole()
	console.Title("matchframe doctor")

	cfg, err := loadConfig(configPath)
	if err != nil {
		console.Error("Configuration: %v", err)
		return err
	}
	console.Success("Configuration valid (app %s, region %s)", cfg.AppName, cfg.Region)

	results := checkAllTools()
	for _, r := range results.Results {
		switch {
		case r.Found && r.Version != "":
			console.Success("Found %s (%s)", r.Tool.Name, r.Version)
		case r.Found:
			console.Success("Found %s", r.Tool.Name)
		case r.Tool.Required:
			console.Error("Missing %s - %s (%s)", r.Tool.Name, r.Tool.Description, r.Tool.InstallURL)
		default:
			console.Warn("Missing %s (optional) - %s", r.Tool.Name, r.Tool.Description)
		}
	}
	if err := results.Error(); err != nil {
		return err
	}

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}
	identity, err := cloud.CheckCredentials(ctx)
	if err != nil {
		console.Error("AWS credentials: %v", err)
		return err
	}
	console.Success("AWS credentials valid (%s)", identity.ARN)

	reportLastRun(console)
	return nil
}

// reportLastRun summarizes the outputs file if one exists.
func reportLastRun(console *ui.Console) {
	if _, err := os.Stat(outputs.DefaultFile); err != nil {
		console.Info("No previous provisioning run recorded")
		return
	}

	record, err := loadOutputs(outputs.DefaultFile)
	if err != nil {
		console.Warn("Outputs file %s is unreadable: %v", outputs.DefaultFile, err)
		return
	}
	if err := record.Validate(); err != nil {
		console.Warn("Outputs file %s is incomplete: %v", outputs.DefaultFile, err)
		return
	}
	console.Info("Last run: instance %s at %s (%s)", record.InstanceID, record.PublicIP, record.Region)
	console.Info("Repository: %s", record.RepositoryURI)
}
