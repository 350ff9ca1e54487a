package compute

import (
	"context"
	"fmt"
	"time"

	"github.com/matchframe/matchframe/internal/platform/ssh"
	"github.com/matchframe/matchframe/internal/provisioning"
)

// readyProbe succeeds once the engine daemon answers, i.e. the
// user-data bootstrap has finished.
const readyProbe = "docker info >/dev/null 2>&1"

// ReadinessPhase polls the new instance until its container engine
// answers, instead of sleeping a fixed interval and hoping the boot
// sequence finished.
type ReadinessPhase struct {
	// NewCommunicator is injectable for tests.
	NewCommunicator func(host, user string, privateKey []byte) ssh.Communicator
}

// NewReadinessPhase creates the readiness phase.
func NewReadinessPhase() *ReadinessPhase {
	return &ReadinessPhase{
		NewCommunicator: func(host, user string, privateKey []byte) ssh.Communicator {
			return ssh.NewSSHCommunicator(host, user, privateKey)
		},
	}
}

// Name implements the provisioning.Phase interface.
func (p *ReadinessPhase) Name() string {
	return "readiness"
}

// Provision implements the provisioning.Phase interface.
func (p *ReadinessPhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.PublicIP == "" {
		return fmt.Errorf("no public address recorded for the instance")
	}

	comm := p.NewCommunicator(ctx.State.PublicIP, ctx.Config.SSHUser, ctx.State.PrivateKey)

	deadline, cancel := context.WithTimeout(ctx, ctx.Timeouts.InstanceReady)
	defer cancel()

	attempt := 0
	for {
		attempt++
		_, err := comm.Execute(deadline, readyProbe)
		if err == nil {
			ctx.Observer.Printf("[readiness] container engine ready after %d probe(s)", attempt)
			return nil
		}

		select {
		case <-deadline.Done():
			return fmt.Errorf("instance %s did not become ready within %v: %w",
				ctx.State.InstanceID, ctx.Timeouts.InstanceReady, err)
		case <-time.After(ctx.Timeouts.ReadyPollInterval):
		}
	}
}
