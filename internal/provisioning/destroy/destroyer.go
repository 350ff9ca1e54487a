// Package destroy tears down the resources a provisioning run created,
// in reverse order of creation. Every step tolerates resources that are
// already gone, so a partial or repeated teardown is safe.
package destroy

import (
	"fmt"
	"os"

	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

// Options selects the optional teardown steps.
type Options struct {
	// RemoveRepository deletes the image repository and everything
	// pushed to it. Off by default: images survive instance teardown.
	RemoveRepository bool

	// PurgeLocalKey also removes the private key file from disk after
	// the cloud half of the key pair is deleted.
	PurgeLocalKey bool
}

// Phases returns the teardown phases in execution order.
func Phases(opts Options) []provisioning.Phase {
	phases := []provisioning.Phase{
		NewInstancePhase(),
		NewNetworkPhase(),
		NewAccessPhase(opts.PurgeLocalKey),
		NewLogsPhase(),
	}
	if opts.RemoveRepository {
		phases = append(phases, NewRegistryPhase())
	}
	return phases
}

// InstancePhase terminates the application instance.
type InstancePhase struct{}

// NewInstancePhase creates the instance teardown phase.
func NewInstancePhase() *InstancePhase { return &InstancePhase{} }

// Name implements the provisioning.Phase interface.
func (p *InstancePhase) Name() string { return "compute.destroy" }

// Provision implements the provisioning.Phase interface.
func (p *InstancePhase) Provision(ctx *provisioning.Context) error {
	name := naming.Instance(ctx.Config.AppName)

	instance, err := ctx.Cloud.FindInstance(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up instance: %w", err)
	}
	if instance == nil {
		provisioning.LogResourceAbsent(ctx.Observer, p.Name(), "instance", name)
		return nil
	}

	if err := ctx.Cloud.TerminateInstance(ctx, instance.ID); err != nil {
		return fmt.Errorf("failed to terminate instance %s: %w", instance.ID, err)
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "instance", instance.ID)
	return nil
}

// NetworkPhase deletes the security group. The platform layer retries
// while the terminated instance still holds a reference to it.
type NetworkPhase struct{}

// NewNetworkPhase creates the network teardown phase.
func NewNetworkPhase() *NetworkPhase { return &NetworkPhase{} }

// Name implements the provisioning.Phase interface.
func (p *NetworkPhase) Name() string { return "network.destroy" }

// Provision implements the provisioning.Phase interface.
func (p *NetworkPhase) Provision(ctx *provisioning.Context) error {
	name := naming.SecurityGroup(ctx.Config.AppName)
	deleted, err := ctx.Cloud.DeleteSecurityGroup(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete security group: %w", err)
	}
	if !deleted {
		provisioning.LogResourceAbsent(ctx.Observer, p.Name(), "security group", name)
		return nil
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "security group", name)
	return nil
}

// AccessPhase deletes the key pair, and optionally the local PEM file.
type AccessPhase struct {
	purgeLocalKey bool

	// RemoveFile is injectable for tests.
	RemoveFile func(path string) error
}

// NewAccessPhase creates the key pair teardown phase.
func NewAccessPhase(purgeLocalKey bool) *AccessPhase {
	return &AccessPhase{
		purgeLocalKey: purgeLocalKey,
		RemoveFile:    os.Remove,
	}
}

// Name implements the provisioning.Phase interface.
func (p *AccessPhase) Name() string { return "access.destroy" }

// Provision implements the provisioning.Phase interface.
func (p *AccessPhase) Provision(ctx *provisioning.Context) error {
	name := ctx.Config.KeyName

	exists, err := ctx.Cloud.KeyPairExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up key pair: %w", err)
	}
	if !exists {
		provisioning.LogResourceAbsent(ctx.Observer, p.Name(), "key pair", name)
	} else {
		if err := ctx.Cloud.DeleteKeyPair(ctx, name); err != nil {
			return fmt.Errorf("failed to delete key pair: %w", err)
		}
		provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "key pair", name)
	}

	if p.purgeLocalKey {
		path := naming.PrivateKeyFile(name)
		switch err := p.RemoveFile(path); {
		case err == nil:
			ctx.Observer.Printf("[%s] removed %s", p.Name(), path)
		case os.IsNotExist(err):
			// nothing to purge
		default:
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// LogsPhase deletes the log group.
type LogsPhase struct{}

// NewLogsPhase creates the log group teardown phase.
func NewLogsPhase() *LogsPhase { return &LogsPhase{} }

// Name implements the provisioning.Phase interface.
func (p *LogsPhase) Name() string { return "logs.destroy" }

// Provision implements the provisioning.Phase interface.
func (p *LogsPhase) Provision(ctx *provisioning.Context) error {
	name := naming.LogGroup(ctx.Config.AppName)
	deleted, err := ctx.Cloud.DeleteLogGroup(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to delete log group: %w", err)
	}
	if !deleted {
		provisioning.LogResourceAbsent(ctx.Observer, p.Name(), "log group", name)
		return nil
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "log group", name)
	return nil
}

// RegistryPhase force-deletes the image repository.
type RegistryPhase struct{}

// NewRegistryPhase creates the repository teardown phase.
func NewRegistryPhase() *RegistryPhase { return &RegistryPhase{} }

// Name implements the provisioning.Phase interface.
func (p *RegistryPhase) Name() string { return "registry.destroy" }

// Provision implements the provisioning.Phase interface.
func (p *RegistryPhase) Provision(ctx *provisioning.Context) error {
	name := naming.Repository(ctx.Config.AppName)
	deleted, err := ctx.Cloud.DeleteRepository(ctx, name, true)
	if err != nil {
		return fmt.Errorf("failed to delete repository: %w", err)
	}
	if !deleted {
		provisioning.LogResourceAbsent(ctx.Observer, p.Name(), "repository", name)
		return nil
	}
	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "repository", name)
	return nil
}
