package config

// Config is the full configuration for a provisioning run.
type Config struct {
	// AppName is the logical application name. Every provisioned
	// resource name derives from it.
	AppName string `mapstructure:"app_name" yaml:"app_name"`

	// Region is the AWS region to provision into.
	// Overridable via the AWS_REGION environment variable.
	Region string `mapstructure:"region" yaml:"region"`

	// KeyName is the EC2 key pair name.
	// Overridable via the KEY_NAME environment variable.
	KeyName string `mapstructure:"key_name" yaml:"key_name"`

	// InstanceType is the EC2 instance type to launch.
	InstanceType string `mapstructure:"instance_type" yaml:"instance_type"`

	// AMIFilter is the image name filter used to resolve the newest
	// matching base image.
	AMIFilter string `mapstructure:"ami_filter" yaml:"ami_filter"`

	// AMIOwner restricts the image lookup to a single owner alias.
	AMIOwner string `mapstructure:"ami_owner" yaml:"ami_owner"`

	// SSHUser is the login user on the provisioned instance.
	SSHUser string `mapstructure:"ssh_user" yaml:"ssh_user"`

	// PrerequisitesCheckEnabled controls the local-tooling preflight.
	// Defaults to enabled; set to false to skip (e.g. in CI smoke runs).
	PrerequisitesCheckEnabled *bool `mapstructure:"prerequisites_check_enabled" yaml:"prerequisites_check_enabled"`

	// Image describes the container image to build and push.
	Image ImageConfig `mapstructure:"image" yaml:"image"`

	// Container describes how the container runs on the instance.
	Container ContainerConfig `mapstructure:"container" yaml:"container"`
}

// ImageConfig describes the local image build.
type ImageConfig struct {
	// Tag applied to the built image. Defaults to "latest".
	Tag string `mapstructure:"tag" yaml:"tag"`

	// BuildContext is the directory passed to the image build.
	// Defaults to the current directory.
	BuildContext string `mapstructure:"build_context" yaml:"build_context"`

	// Dockerfile relative to the build context. Empty means the
	// engine's default lookup.
	Dockerfile string `mapstructure:"dockerfile" yaml:"dockerfile"`
}

// ContainerConfig describes the deployed container.
type ContainerConfig struct {
	// HostPort is the instance port exposed to the world.
	HostPort int `mapstructure:"host_port" yaml:"host_port"`

	// ContainerPort is the port the application listens on.
	ContainerPort int `mapstructure:"container_port" yaml:"container_port"`

	// RestartPolicy is the container engine restart policy.
	RestartPolicy string `mapstructure:"restart_policy" yaml:"restart_policy"`

	// Env is passed to the container at run time.
	Env map[string]string `mapstructure:"env" yaml:"env"`
}
