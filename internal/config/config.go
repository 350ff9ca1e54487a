// Package config loads, defaults, and validates the matchframe
// configuration.
//
// Configuration comes from a YAML file (matchframe.yaml by default)
// with two environment overrides: AWS_REGION for the region and
// KEY_NAME for the EC2 key pair name. Environment always wins over the
// file so a single config can be pointed at different accounts.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultFile is the config file looked up when none is specified.
const DefaultFile = "matchframe.yaml"

// Defaults applied when the file leaves a field empty.
const (
	DefaultAppName       = "sports-analytics"
	DefaultRegion        = "us-east-1"
	DefaultKeyName       = "matchframe-key"
	DefaultInstanceType  = "t2.micro"
	DefaultAMIFilter     = "al2023-ami-*-x86_64"
	DefaultAMIOwner      = "amazon"
	DefaultSSHUser       = "ec2-user"
	DefaultImageTag      = "latest"
	DefaultHostPort      = 80
	DefaultContainerPort = 8000
	DefaultRestartPolicy = "unless-stopped"
)

// appNameRegex validates app names: 1-40 lowercase alphanumeric with hyphens.
// ECR repository names and security group names both accept this set.
var appNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,38}[a-z0-9])?$`)

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills every empty field with its default.
func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.KeyName == "" {
		c.KeyName = DefaultKeyName
	}
	if c.InstanceType == "" {
		c.InstanceType = DefaultInstanceType
	}
	if c.AMIFilter == "" {
		c.AMIFilter = DefaultAMIFilter
	}
	if c.AMIOwner == "" {
		c.AMIOwner = DefaultAMIOwner
	}
	if c.SSHUser == "" {
		c.SSHUser = DefaultSSHUser
	}
	if c.Image.Tag == "" {
		c.Image.Tag = DefaultImageTag
	}
	if c.Image.BuildContext == "" {
		c.Image.BuildContext = "."
	}
	if c.Container.HostPort == 0 {
		c.Container.HostPort = DefaultHostPort
	}
	if c.Container.ContainerPort == 0 {
		c.Container.ContainerPort = DefaultContainerPort
	}
	if c.Container.RestartPolicy == "" {
		c.Container.RestartPolicy = DefaultRestartPolicy
	}
}

// applyEnvOverrides applies the two supported environment selectors.
func (c *Config) applyEnvOverrides() {
	if region := os.Getenv("AWS_REGION"); region != "" {
		c.Region = region
	}
	if keyName := os.Getenv("KEY_NAME"); keyName != "" {
		c.KeyName = keyName
	}
}

// Validate checks the configuration for values the provider would reject.
func (c *Config) Validate() error {
	var problems []string

	if !appNameRegex.MatchString(c.AppName) {
		problems = append(problems, fmt.Sprintf("app_name %q must be 1-40 lowercase alphanumeric characters or hyphens", c.AppName))
	}
	if c.Region == "" {
		problems = append(problems, "region must not be empty")
	}
	if c.KeyName == "" {
		problems = append(problems, "key_name must not be empty")
	}
	if c.Container.HostPort < 1 || c.Container.HostPort > 65535 {
		problems = append(problems, fmt.Sprintf("container.host_port %d out of range", c.Container.HostPort))
	}
	if c.Container.ContainerPort < 1 || c.Container.ContainerPort > 65535 {
		problems = append(problems, fmt.Sprintf("container.container_port %d out of range", c.Container.ContainerPort))
	}
	switch c.Container.RestartPolicy {
	case "no", "always", "on-failure", "unless-stopped":
	default:
		problems = append(problems, fmt.Sprintf("container.restart_policy %q is not a valid restart policy", c.Container.RestartPolicy))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// PrerequisitesEnabled reports whether the local-tooling preflight runs.
func (c *Config) PrerequisitesEnabled() bool {
	return c.PrerequisitesCheckEnabled == nil || *c.PrerequisitesCheckEnabled
}
