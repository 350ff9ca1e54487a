package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/provisioning/destroy"
)

// DestroyOptions selects the optional teardown steps.
type DestroyOptions struct {
	// RemoveRepository also deletes the image repository and images.
	RemoveRepository bool

	// PurgeLocalKey also removes the local private key file.
	PurgeLocalKey bool
}

// removeFile removes a file - can be replaced in tests.
var removeFile = os.Remove

// Destroy tears down the provisioned AWS resources in reverse
// dependency order. Resources that are already gone are skipped, so a
// partial teardown can be re-run until it completes.
func Destroy(ctx context.Context, configPath string, opts DestroyOptions) error {
	console := newConsole()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	console.Title("Destroying %s in %s", cfg.AppName, cfg.Region)

	cloud, err := newCloudClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	pCtx := newProvisioningContext(ctx, cfg, cloud)
	phases := destroy.Phases(destroy.Options{
		RemoveRepository: opts.RemoveRepository,
		PurgeLocalKey:    opts.PurgeLocalKey,
	})
	if err := runPhases(pCtx, phases); err != nil {
		console.Error("Destroy failed: %v", err)
		return fmt.Errorf("destroy failed: %w", err)
	}

	// The outputs file now describes resources that no longer exist.
	if err := removeFile(outputs.DefaultFile); err != nil && !os.IsNotExist(err) {
		console.Warn("Could not remove %s: %v", outputs.DefaultFile, err)
	}

	console.Success("All resources destroyed")
	return nil
}
