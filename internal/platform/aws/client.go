// Package aws wraps the AWS SDK behind per-concern manager interfaces.
//
// Provisioning phases depend on these interfaces rather than on SDK
// clients, so the pipeline can be tested against MockClient and the
// real implementation stays in one place.
package aws

import (
	"context"
)

// Repository identifies an ECR repository.
type Repository struct {
	Name string
	URI  string
}

// RegistryAuth holds decoded registry credentials for an image push.
type RegistryAuth struct {
	Username string
	Password string
	// Endpoint is the registry host, e.g. 123456789012.dkr.ecr.us-east-1.amazonaws.com
	Endpoint string
}

// SecurityGroup identifies a provisioned security group.
type SecurityGroup struct {
	ID   string
	Name string
}

// IngressRule is a single TCP ingress rule.
type IngressRule struct {
	Port int32
	CIDR string
}

// Image identifies a resolved machine image.
type Image struct {
	ID           string
	Name         string
	CreationDate string
}

// Instance identifies a provisioned EC2 instance.
type Instance struct {
	ID       string
	PublicIP string
	State    string
}

// RunSpec holds all parameters for launching an instance.
type RunSpec struct {
	Name            string
	ImageID         string
	InstanceType    string
	KeyName         string
	SecurityGroupID string
	UserData        string
	Tags            map[string]string
}

// CallerIdentity describes the authenticated principal.
type CallerIdentity struct {
	Account string
	ARN     string
}

// RegistryManager manages the container registry.
type RegistryManager interface {
	// EnsureRepository returns the repository with the given name,
	// creating it if absent. The second result reports whether a
	// create happened.
	EnsureRepository(ctx context.Context, name string) (*Repository, bool, error)

	// DeleteRepository removes the repository and reports whether one
	// was there to remove. With force set, images inside it are deleted
	// too. Absent repositories are not an error.
	DeleteRepository(ctx context.Context, name string, force bool) (bool, error)

	// RegistryAuth returns decoded credentials for pushing to the
	// account registry.
	RegistryAuth(ctx context.Context) (*RegistryAuth, error)
}

// SecurityGroupManager manages security groups.
type SecurityGroupManager interface {
	// EnsureSecurityGroup returns the group with the given name,
	// creating it with exactly the supplied ingress rules if absent.
	// Rules are only authorized on creation; an existing group is
	// reused untouched.
	EnsureSecurityGroup(ctx context.Context, name, description string, rules []IngressRule) (*SecurityGroup, bool, error)

	// DeleteSecurityGroup removes the group by name, retrying while
	// dependent resources (a terminating instance) release it. The
	// result reports whether a group was there to remove.
	DeleteSecurityGroup(ctx context.Context, name string) (bool, error)
}

// KeyPairManager manages EC2 key pairs.
type KeyPairManager interface {
	// KeyPairExists reports whether a key pair with the name is registered.
	KeyPairExists(ctx context.Context, name string) (bool, error)

	// ImportKeyPair registers the public half of a locally generated
	// key pair and returns the provider-assigned ID.
	ImportKeyPair(ctx context.Context, name string, publicKey []byte) (string, error)

	// DeleteKeyPair removes the key pair. Absent pairs are not an error.
	DeleteKeyPair(ctx context.Context, name string) error
}

// InstanceManager manages EC2 instances.
type InstanceManager interface {
	// ResolveImage returns the newest available image matching the
	// name filter for the given owner.
	ResolveImage(ctx context.Context, nameFilter, owner string) (*Image, error)

	// FindInstance returns the pending or running instance carrying
	// the given Name tag, or nil if none exists.
	FindInstance(ctx context.Context, name string) (*Instance, error)

	// RunInstance launches one instance, blocks until the provider
	// reports it running, and returns it with the public IP populated.
	RunInstance(ctx context.Context, spec RunSpec) (*Instance, error)

	// WaitInstanceRunning blocks until the instance reaches the running
	// state and returns it with the public IP populated.
	WaitInstanceRunning(ctx context.Context, id string) (*Instance, error)

	// TerminateInstance terminates the instance and blocks until the
	// provider reports it terminated.
	TerminateInstance(ctx context.Context, id string) error
}

// LogGroupManager manages CloudWatch log groups.
type LogGroupManager interface {
	// EnsureLogGroup creates the log group if absent. The result
	// reports whether a create happened.
	EnsureLogGroup(ctx context.Context, name string) (bool, error)

	// DeleteLogGroup removes the log group and reports whether one was
	// there to remove. Absent groups are not an error.
	DeleteLogGroup(ctx context.Context, name string) (bool, error)
}

// CredentialChecker validates provider credentials.
type CredentialChecker interface {
	// CheckCredentials performs a cheap authenticated call and
	// returns the caller identity.
	CheckCredentials(ctx context.Context) (*CallerIdentity, error)
}

// CloudManager is the full provider surface the pipeline needs.
type CloudManager interface {
	RegistryManager
	SecurityGroupManager
	KeyPairManager
	InstanceManager
	LogGroupManager
	CredentialChecker
}
