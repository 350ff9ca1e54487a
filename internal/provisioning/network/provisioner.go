// Package network provisions the instance security group.
package network

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const phase = "network"

// Ingress rules applied when the group is created: the application
// port and SSH, both world-reachable. An existing group is never
// modified.
var ingressRules = []aws.IngressRule{
	{Port: 80, CIDR: "0.0.0.0/0"},
	{Port: 22, CIDR: "0.0.0.0/0"},
}

// Provisioner resolves or creates the security group.
type Provisioner struct{}

// NewProvisioner creates a new network provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := naming.SecurityGroup(ctx.Config.AppName)
	description := fmt.Sprintf("Security group for %s", ctx.Config.AppName)

	group, created, err := ctx.Cloud.EnsureSecurityGroup(ctx, name, description, ingressRules)
	if err != nil {
		return fmt.Errorf("failed to ensure security group: %w", err)
	}

	if created {
		provisioning.LogResourceCreated(ctx.Observer, phase, "security group", name, group.ID)
	} else {
		provisioning.LogResourceExists(ctx.Observer, phase, "security group", name, group.ID)
	}

	ctx.State.SecurityGroupID = group.ID
	return nil
}
