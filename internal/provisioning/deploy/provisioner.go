package deploy

import (
	"context"
	"fmt"

	"github.com/matchframe/matchframe/internal/platform/ssh"
	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const remotePhase = "deploy"

// remoteScriptPath is where the rendered script lands on the instance.
// It is removed again once the container is running.
const remoteScriptPath = "/tmp/matchframe-deploy.sh"

// Provisioner runs the rendered deployment script on the instance:
// pull the pushed image and replace the running container.
type Provisioner struct {
	// NewCommunicator is injectable for tests.
	NewCommunicator func(host, user string, privateKey []byte) ssh.Communicator
}

// NewProvisioner creates the remote deployment phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		NewCommunicator: func(host, user string, privateKey []byte) ssh.Communicator {
			return ssh.NewSSHCommunicator(host, user, privateKey)
		},
	}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return remotePhase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.PublicIP == "" {
		return fmt.Errorf("no public address recorded for the instance")
	}
	if ctx.State.ImageReference == "" {
		return fmt.Errorf("no pushed image recorded, image phase must run first")
	}

	auth, err := ctx.Cloud.RegistryAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain registry credentials: %w", err)
	}

	script, err := RenderScript(Params{
		ImageReference:   ctx.State.ImageReference,
		ContainerName:    naming.Container(ctx.Config.AppName),
		HostPort:         ctx.Config.Container.HostPort,
		ContainerPort:    ctx.Config.Container.ContainerPort,
		RestartPolicy:    ctx.Config.Container.RestartPolicy,
		Env:              ctx.Config.Container.Env,
		Region:           ctx.Config.Region,
		LogGroup:         ctx.State.LogGroup,
		RegistryUser:     auth.Username,
		RegistryEndpoint: auth.Endpoint,
	})
	if err != nil {
		return err
	}

	comm := p.NewCommunicator(ctx.State.PublicIP, ctx.Config.SSHUser, ctx.State.PrivateKey)

	deadline, cancel := context.WithTimeout(ctx, ctx.Timeouts.RemoteCommand)
	defer cancel()

	if err := comm.Upload(deadline, []byte(script), remoteScriptPath, 0o700); err != nil {
		return fmt.Errorf("failed to upload deploy script: %w", err)
	}

	ctx.Observer.Printf("[%s] starting %s on %s", remotePhase, ctx.State.ImageReference, ctx.State.PublicIP)
	command := fmt.Sprintf("bash %s %s", remoteScriptPath, squote(auth.Password))
	if output, err := comm.Execute(deadline, command); err != nil {
		return fmt.Errorf("failed to run deploy script: %w, output: %s", err, output)
	}

	// Best effort: the script holds no secrets, but there is no reason
	// to leave it behind.
	if _, err := comm.Execute(deadline, fmt.Sprintf("rm -f %s", remoteScriptPath)); err != nil {
		ctx.Observer.Printf("[%s] could not remove %s: %v", remotePhase, remoteScriptPath, err)
	}

	ctx.Observer.Printf("[%s] application available at http://%s:%d", remotePhase, ctx.State.PublicIP, ctx.Config.Container.HostPort)
	return nil
}
