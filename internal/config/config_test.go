package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultKeyName, cfg.KeyName)
	assert.Equal(t, DefaultInstanceType, cfg.InstanceType)
	assert.Equal(t, DefaultAMIFilter, cfg.AMIFilter)
	assert.Equal(t, DefaultSSHUser, cfg.SSHUser)
	assert.Equal(t, DefaultHostPort, cfg.Container.HostPort)
	assert.Equal(t, DefaultContainerPort, cfg.Container.ContainerPort)
	assert.Equal(t, DefaultRestartPolicy, cfg.Container.RestartPolicy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	content := `app_name: pitch-tracker
region: eu-west-1
instance_type: t3.small
container:
  host_port: 8080
  container_port: 9000
  env:
    LOG_LEVEL: debug
`
	path := filepath.Join(t.TempDir(), "matchframe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "pitch-tracker", cfg.AppName)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "t3.small", cfg.InstanceType)
	assert.Equal(t, 8080, cfg.Container.HostPort)
	assert.Equal(t, 9000, cfg.Container.ContainerPort)
	assert.Equal(t, "debug", cfg.Container.Env["LOG_LEVEL"])

	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultKeyName, cfg.KeyName)
	assert.Equal(t, DefaultRestartPolicy, cfg.Container.RestartPolicy)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AWS_REGION", "ap-southeast-2")
	t.Setenv("KEY_NAME", "ops-key")

	cfg, err := finalize(&Config{Region: "us-east-1", KeyName: "file-key"})
	require.NoError(t, err)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
	assert.Equal(t, "ops-key", cfg.KeyName)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "bad app name",
			mutate:  func(c *Config) { c.AppName = "Sports_Analytics" },
			wantErr: "app_name",
		},
		{
			name:    "trailing hyphen",
			mutate:  func(c *Config) { c.AppName = "sports-" },
			wantErr: "app_name",
		},
		{
			name:    "host port out of range",
			mutate:  func(c *Config) { c.Container.HostPort = 70000 },
			wantErr: "host_port",
		},
		{
			name:    "bad restart policy",
			mutate:  func(c *Config) { c.Container.RestartPolicy = "sometimes" },
			wantErr: "restart_policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPrerequisitesEnabled(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.True(t, cfg.PrerequisitesEnabled())

	disabled := false
	cfg.PrerequisitesCheckEnabled = &disabled
	assert.False(t, cfg.PrerequisitesEnabled())
}

func TestWriteStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchframe.yaml")
	require.NoError(t, WriteStarter(path, Default()))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppName, cfg.AppName)

	// Refuses to clobber.
	require.Error(t, WriteStarter(path, Default()))
}
