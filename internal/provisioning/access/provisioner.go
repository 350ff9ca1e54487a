// Package access provisions the EC2 key pair used for SSH deployment.
package access

import (
	"fmt"
	"os"

	"github.com/matchframe/matchframe/internal/provisioning"
	"github.com/matchframe/matchframe/internal/util/keygen"
	"github.com/matchframe/matchframe/internal/util/naming"
)

const phase = "access"

const keyBits = 4096

// Provisioner resolves or creates the key pair. On creation the
// private half is written next to the config with owner-only access.
type Provisioner struct {
	// GenerateKey is injectable for tests.
	GenerateKey func(bits int) (*keygen.KeyPair, error)
}

// NewProvisioner creates a new access provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{GenerateKey: keygen.GenerateRSAKeyPair}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	keyName := ctx.Config.KeyName
	keyPath := naming.PrivateKeyFile(keyName)

	exists, err := ctx.Cloud.KeyPairExists(ctx, keyName)
	if err != nil {
		return fmt.Errorf("failed to check key pair: %w", err)
	}

	if exists {
		// The private half lives only on this machine; a registered
		// pair without its local PEM cannot be used to reach the host.
		privateKey, err := os.ReadFile(keyPath) // #nosec G304
		if err != nil {
			return fmt.Errorf("key pair %s is registered but %s is missing locally: %w", keyName, keyPath, err)
		}
		provisioning.LogResourceExists(ctx.Observer, phase, "key pair", keyName, keyName)
		ctx.State.KeyName = keyName
		ctx.State.PrivateKey = privateKey
		ctx.State.PrivateKeyPath = keyPath
		return nil
	}

	pair, err := p.GenerateKey(keyBits)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}

	keyID, err := ctx.Cloud.ImportKeyPair(ctx, keyName, pair.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to import key pair: %w", err)
	}

	if err := pair.WritePrivateKey(keyPath); err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "key pair", keyName, keyID)
	ctx.State.KeyName = keyName
	ctx.State.PrivateKey = pair.PrivateKey
	ctx.State.PrivateKeyPath = keyPath
	return nil
}
