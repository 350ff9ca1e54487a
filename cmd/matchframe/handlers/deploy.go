package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/provisioning/deploy"
	"github.com/matchframe/matchframe/internal/util/naming"
)

// Factory function variables for deploy - can be replaced in tests.
var (
	// loadOutputs reads a previous run's outputs file.
	loadOutputs = outputs.Load

	// readFile reads a file from disk.
	readFile = os.ReadFile
)

// deployPhases returns the redeploy pipeline: preflight, image build
// and push, and the remote container restart.
var deployPhases = func() []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewPreflightPhase(),
		deploy.NewImagePhase(),
		deploy.NewProvisioner(),
	}
}

// Deploy rebuilds the image and replaces the running container on the
// instance a previous provisioning run recorded. No infrastructure is
// created or modified.
func Deploy(ctx context.Context, configPath, outputsPath string) error {
	console := newConsole()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if outputsPath == "" {
		outputsPath = outputs.DefaultFile
	}
	record, err := loadOutputs(outputsPath)
	if err != nil {
		return fmt.Errorf("no provisioning run found (%w); run 'matchframe up' first", err)
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("outputs file %s is incomplete: %w; run 'matchframe up' first", outputsPath, err)
	}

	keyPath := naming.PrivateKeyFile(cfg.KeyName)
	privateKey, err := readFile(keyPath)
	if err != nil {
		return fmt.Errorf("cannot read private key %s: %w", keyPath, err)
	}

	// The outputs file names the region the resources actually live
	// in; it wins over the config for a redeploy.
	cfg.Region = record.Region

	console.Title("Redeploying %s to %s", cfg.AppName, record.PublicIP)

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	pCtx := newProvisioningContext(ctx, cfg, cloud)
	pCtx.State.RepositoryURI = record.RepositoryURI
	pCtx.State.SecurityGroupID = record.SecurityGroupID
	pCtx.State.InstanceID = record.InstanceID
	pCtx.State.PublicIP = record.PublicIP
	pCtx.State.KeyName = cfg.KeyName
	pCtx.State.PrivateKey = privateKey
	pCtx.State.PrivateKeyPath = keyPath
	pCtx.State.LogGroup = naming.LogGroup(cfg.AppName)

	if err := runPhases(pCtx, deployPhases()); err != nil {
		console.Error("Redeploy failed: %v", err)
		return err
	}

	console.Success("Redeploy complete")
	console.Info("Application: http://%s:%d", record.PublicIP, cfg.Container.HostPort)
	return nil
}
