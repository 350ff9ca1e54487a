// Package compute provisions the EC2 instance that runs the application.
package compute

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const phase = "compute"

// Provisioner resolves the base image and launches (or reuses) the
// application instance.
type Provisioner struct{}

// NewProvisioner creates a new compute provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := naming.Instance(ctx.Config.AppName)

	existing, err := ctx.Cloud.FindInstance(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up instance: %w", err)
	}
	if existing != nil {
		// An interrupted run can leave the instance pending, without a
		// public IP yet. Wait for it the same way a fresh launch does.
		if existing.State != "running" || existing.PublicIP == "" {
			existing, err = ctx.Cloud.WaitInstanceRunning(ctx, existing.ID)
			if err != nil {
				return fmt.Errorf("failed to wait for instance: %w", err)
			}
		}
		if existing.PublicIP == "" {
			return fmt.Errorf("instance %s is running but has no public address", existing.ID)
		}
		provisioning.LogResourceExists(ctx.Observer, phase, "instance", name, existing.ID)
		ctx.State.InstanceID = existing.ID
		ctx.State.PublicIP = existing.PublicIP
		return nil
	}

	image, err := ctx.Cloud.ResolveImage(ctx, ctx.Config.AMIFilter, ctx.Config.AMIOwner)
	if err != nil {
		return fmt.Errorf("failed to resolve base image: %w", err)
	}
	ctx.Observer.Printf("[%s] resolved base image %s (%s)", phase, image.ID, image.Name)
	ctx.State.ImageID = image.ID

	userData, err := renderUserData(userDataParams{SSHUser: ctx.Config.SSHUser})
	if err != nil {
		return err
	}

	instance, err := ctx.Cloud.RunInstance(ctx, aws.RunSpec{
		Name:            name,
		ImageID:         image.ID,
		InstanceType:    ctx.Config.InstanceType,
		KeyName:         ctx.State.KeyName,
		SecurityGroupID: ctx.State.SecurityGroupID,
		UserData:        userData,
		Tags:            map[string]string{"app": ctx.Config.AppName},
	})
	if err != nil {
		return fmt.Errorf("failed to launch instance: %w", err)
	}
	if instance.PublicIP == "" {
		return fmt.Errorf("instance %s is running but has no public address", instance.ID)
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "instance", name, instance.ID)
	ctx.Observer.Printf("[%s] instance %s running at %s", phase, instance.ID, instance.PublicIP)
	ctx.State.InstanceID = instance.ID
	ctx.State.PublicIP = instance.PublicIP
	return nil
}
