// Package registry provisions the container registry repository.
package registry

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const phase = "registry"

// Provisioner resolves or creates the ECR repository for the app image.
type Provisioner struct{}

// NewProvisioner creates a new registry provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := naming.Repository(ctx.Config.AppName)

	repo, created, err := ctx.Cloud.EnsureRepository(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to ensure repository: %w", err)
	}

	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "repository", name, repo.URI)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "repository", name, repo.URI)
	}

	ctx.State.RepositoryURI = repo.URI
	return nil
}
