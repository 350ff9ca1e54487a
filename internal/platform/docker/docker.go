// Package docker drives the local container engine CLI for image
// build, tag, login, and push.
//
// The docker binary is invoked directly rather than through the engine
// API: the build needs the local daemon's context handling and
// credential storage exactly as an operator would use them, and the
// preflight check already guarantees the binary is present.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Engine runs docker commands. Output streams to the attached writers
// so the operator sees build and push progress live.
type Engine struct {
	binary string
	stdout io.Writer
	stderr io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput redirects command output, used by tests.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Engine) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithBinary overrides the docker binary path, used by tests.
func WithBinary(path string) Option {
	return func(e *Engine) {
		e.binary = path
	}
}

// NewEngine returns an Engine using the docker binary from PATH.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		binary: "docker",
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) run(ctx context.Context, stdin io.Reader, args ...string) error {
	// #nosec G204 - args are assembled from validated configuration
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", e.binary, args[0], err)
	}
	return nil
}

// Build builds an image from contextDir and tags it with reference.
// dockerfile may be empty for the engine's default lookup.
func (e *Engine) Build(ctx context.Context, contextDir, dockerfile, reference string) error {
	args := []string{"build", "-t", reference}
	if dockerfile != "" {
		args = append(args, "-f", dockerfile)
	}
	args = append(args, contextDir)
	return e.run(ctx, nil, args...)
}

// Tag applies an additional reference to an existing image.
func (e *Engine) Tag(ctx context.Context, source, target string) error {
	return e.run(ctx, nil, "tag", source, target)
}

// Login authenticates against a registry, feeding the password over
// stdin so it never appears in the process table.
func (e *Engine) Login(ctx context.Context, registry, username, password string) error {
	return e.run(ctx, strings.NewReader(password),
		"login", "--username", username, "--password-stdin", registry)
}

// Push uploads the tagged image to its registry.
func (e *Engine) Push(ctx context.Context, reference string) error {
	return e.run(ctx, nil, "push", reference)
}
