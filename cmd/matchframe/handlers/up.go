// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of
// the CLI framework; dependencies are injected through package-level
// factory variables.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/matchframe/matchframe/internal/config"
	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/provisioning/access"
	"github.com/matchframe/matchframe/internal/provisioning/compute"
	"github.com/matchframe/matchframe/internal/provisioning/deploy"
	"github.com/matchframe/matchframe/internal/provisioning/logs"
	"github.com/matchframe/matchframe/internal/provisioning/network"
	"github.com/matchframe/matchframe/internal/provisioning/registry"
	"github.com/matchframe/matchframe/internal/ui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig resolves the run configuration.
	loadConfig = config.Load

	// newCloudClient creates the AWS client.
	newCloudClient = func(ctx context.Context, region string) (aws.CloudManager, error) {
		return aws.NewRealClient(ctx, region)
	}

	// newProvisioningContext creates a provisioning context.
	newProvisioningContext = provisioning.NewContext

	// runPhases executes a phase pipeline.
	runPhases = provisioning.RunPhases

	// newConsole creates the status console.
	newConsole = ui.NewConsole

	// writeFile writes data to a file.
	writeFile = os.WriteFile
)

// upPhases returns the pipeline in order. With skipDeploy only the
// infrastructure phases run; image build and remote start are left to
// a later 'matchframe deploy'.
var upPhases = func(skipDeploy bool) []provisioning.Phase {
	phases := []provisioning.Phase{
		provisioning.NewPreflightPhase(),
		registry.NewProvisioner(),
		network.NewProvisioner(),
		access.NewProvisioner(),
		compute.NewProvisioner(),
		logs.NewProvisioner(),
	}
	if !skipDeploy {
		phases = append(phases,
			compute.NewReadinessPhase(),
			deploy.NewImagePhase(),
			deploy.NewProvisioner(),
		)
	}
	return phases
}

// Up provisions the AWS infrastructure and deploys the application.
//
// The run is idempotent: every phase reuses a resource that already
// exists. Results are written to the outputs file, which is truncated
// up front so it never mixes state from different runs.
func Up(ctx context.Context, configPath string, skipDeploy bool) error {
	console := newConsole()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	console.Title("Provisioning %s in %s", cfg.AppName, cfg.Region)

	// Truncate first: a failed run must not leave last run's values
	// around for a later command to trust.
	if err := writeFile(outputs.DefaultFile, nil, 0o644); err != nil {
		return fmt.Errorf("failed to reset outputs file: %w", err)
	}

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	pCtx := newProvisioningContext(ctx, cfg, cloud)
	if err := runPhases(pCtx, upPhases(skipDeploy)); err != nil {
		console.Error("Provisioning failed: %v", err)
		return err
	}

	record := &outputs.Outputs{
		Region:          cfg.Region,
		RepositoryURI:   pCtx.State.RepositoryURI,
		SecurityGroupID: pCtx.State.SecurityGroupID,
		InstanceID:      pCtx.State.InstanceID,
		PublicIP:        pCtx.State.PublicIP,
	}
	if err := record.Validate(); err != nil {
		return err
	}
	if err := record.Write(outputs.DefaultFile); err != nil {
		return err
	}

	if skipDeploy {
		console.Success("Infrastructure ready, deployment skipped")
		console.Info("Run 'matchframe deploy' to build and start the application")
	} else {
		console.Success("Deployment complete")
		console.Info("Application: http://%s:%d", pCtx.State.PublicIP, cfg.Container.HostPort)
	}
	console.Info("Outputs written to %s", outputs.DefaultFile)
	return nil
}
