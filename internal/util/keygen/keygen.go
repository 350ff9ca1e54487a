// Package keygen generates RSA key pairs for EC2 SSH access.
//
// The private key is emitted in PEM-encoded PKCS#1 format, suitable for
// writing to a .pem file, and the public key in OpenSSH authorized_keys
// format, suitable for the EC2 ImportKeyPair call.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the given bit size.
// EC2 accepts 2048-bit keys as a minimum; 4096 is used by default.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privDER := x509.MarshalPKCS1PrivateKey(privateKey)
	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privDER,
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// WritePrivateKey persists the private key with owner-only read/write
// permission, as required by OpenSSH clients.
func (kp *KeyPair) WritePrivateKey(path string) error {
	if err := os.WriteFile(path, kp.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key to %s: %w", path, err)
	}
	return nil
}
