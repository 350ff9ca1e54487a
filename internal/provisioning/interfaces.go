// Package provisioning provides shared types and interfaces for the
// provisioning pipeline.
//
// The pipeline is organized into focused subpackages:
//   - registry/ for the container registry repository
//   - network/ for the security group
//   - access/ for the EC2 key pair
//   - compute/ for the base image, instance launch, and readiness
//   - logs/ for the CloudWatch log group
//   - deploy/ for image build/push and the remote deployment
//   - destroy/ for the reverse-order teardown
//
// This root package contains the shared interfaces, the run state, the
// observer event model, and the sequential pipeline runner.
package provisioning

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}
