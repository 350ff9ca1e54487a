// Package logs provisions the CloudWatch log group for the application.
package logs

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const phase = "logs"

// Provisioner resolves or creates the log group.
type Provisioner struct{}

// NewProvisioner creates a new logs provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := naming.LogGroup(ctx.Config.AppName)

	created, err := ctx.Cloud.EnsureLogGroup(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to ensure log group: %w", err)
	}

	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "log group", name, name)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "log group", name, name)
	}

	ctx.State.LogGroup = name
	return nil
}
