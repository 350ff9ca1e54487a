// Package ssh executes commands and uploads files on a remote host.
package ssh

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// Communicator defines remote command execution and file transfer.
type Communicator interface {
	// Execute runs a command on the remote host and returns its
	// combined output. Connection establishment is retried.
	Execute(ctx context.Context, command string) (string, error)

	// Upload writes content to remotePath on the remote host with the
	// given permission bits.
	Upload(ctx context.Context, content []byte, remotePath string, mode uint32) error
}

// SSHCommunicator implements Communicator over the SSH protocol using
// key-based authentication.
type SSHCommunicator struct {
	host        string
	user        string
	privateKey  []byte
	dialTimeout time.Duration
	dialRetries int
}

var _ Communicator = (*SSHCommunicator)(nil)

// NewSSHCommunicator creates a communicator for host (without port)
// authenticating as user with the PEM-encoded private key.
func NewSSHCommunicator(host, user string, privateKey []byte) *SSHCommunicator {
	return &SSHCommunicator{
		host:        host,
		user:        user,
		privateKey:  privateKey,
		dialTimeout: 10 * time.Second,
		dialRetries: 10,
	}
}

func (c *SSHCommunicator) connect(ctx context.Context) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	config := &ssh.ClientConfig{
		User: c.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		// The instance was created moments ago; there is no known
		// host key to pin yet.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
		Timeout:         c.dialTimeout,
	}

	addr := net.JoinHostPort(c.host, "22")
	var client *ssh.Client
	for i := 0; i < c.dialRetries; i++ {
		client, err = ssh.Dial("tcp", addr, config)
		if err == nil {
			return client, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	return nil, fmt.Errorf("failed to dial ssh at %s: %w", addr, err)
}

// Execute runs a command and returns its combined output.
func (c *SSHCommunicator) Execute(ctx context.Context, command string) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		return string(output), fmt.Errorf("failed to execute command: %w, output: %s", err, output)
	}
	return string(output), nil
}

// Upload streams content to remotePath over the SSH channel and applies
// the permission bits.
func (c *SSHCommunicator) Upload(ctx context.Context, content []byte, remotePath string, mode uint32) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stdin = bytes.NewReader(content)
	command := fmt.Sprintf("cat > %s && chmod %o %s", quote(remotePath), mode, quote(remotePath))
	if output, err := session.CombinedOutput(command); err != nil {
		return fmt.Errorf("failed to upload %s: %w, output: %s", remotePath, err, output)
	}
	return nil
}

// quote single-quotes a shell word, escaping embedded single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
