package compute

import (
	"context"
	"errors"
	"testing"

	"github.com/matchframe/matchframe/internal/config"
	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/provisioning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cloud aws.CloudManager) *provisioning.Context {
	ctx := provisioning.NewContext(context.Background(), config.Default(), cloud)
	ctx.State.KeyName = "matchframe-key"
	ctx.State.SecurityGroupID = "sg-0123"
	return ctx
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "compute", NewProvisioner().Name())
}

func TestProvision_LaunchesInstance(t *testing.T) {
	t.Parallel()
	var gotSpec aws.RunSpec
	cloud := &aws.MockClient{
		ResolveImageFunc: func(_ context.Context, nameFilter, owner string) (*aws.Image, error) {
			assert.Equal(t, "al2023-ami-*-x86_64", nameFilter)
			assert.Equal(t, "amazon", owner)
			return &aws.Image{ID: "ami-0abc", Name: "al2023-ami-2023.7"}, nil
		},
		RunInstanceFunc: func(_ context.Context, spec aws.RunSpec) (*aws.Instance, error) {
			gotSpec = spec
			return &aws.Instance{ID: "i-0abc", PublicIP: "198.51.100.1", State: "running"}, nil
		},
	}

	ctx := newContext(cloud)
	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Equal(t, "sports-analytics-server", gotSpec.Name)
	assert.Equal(t, "ami-0abc", gotSpec.ImageID)
	assert.Equal(t, "t2.micro", gotSpec.InstanceType)
	assert.Equal(t, "matchframe-key", gotSpec.KeyName)
	assert.Equal(t, "sg-0123", gotSpec.SecurityGroupID)
	assert.Contains(t, gotSpec.UserData, "dnf install -y docker")
	assert.Equal(t, "sports-analytics", gotSpec.Tags["app"])

	assert.Equal(t, "i-0abc", ctx.State.InstanceID)
	assert.Equal(t, "198.51.100.1", ctx.State.PublicIP)
	assert.Equal(t, "ami-0abc", ctx.State.ImageID)
}

func TestProvision_ReusesRunningInstance(t *testing.T) {
	t.Parallel()
	cloud := &aws.MockClient{
		FindInstanceFunc: func(_ context.Context, name string) (*aws.Instance, error) {
			return &aws.Instance{ID: "i-existing", PublicIP: "203.0.113.9", State: "running"}, nil
		},
		RunInstanceFunc: func(_ context.Context, spec aws.RunSpec) (*aws.Instance, error) {
			t.Fatal("a second instance must not be launched")
			return nil, nil
		},
	}

	ctx := newContext(cloud)
	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Equal(t, "i-existing", ctx.State.InstanceID)
	assert.Equal(t, "203.0.113.9", ctx.State.PublicIP)
}

func TestProvision_ReusesPendingInstance(t *testing.T) {
	t.Parallel()
	// A run interrupted mid-launch leaves a pending instance with no
	// public IP. Reuse must wait for it instead of failing on the
	// missing address.
	var waited string
	cloud := &aws.MockClient{
		FindInstanceFunc: func(_ context.Context, name string) (*aws.Instance, error) {
			return &aws.Instance{ID: "i-pending", State: "pending"}, nil
		},
		WaitInstanceRunningFunc: func(_ context.Context, id string) (*aws.Instance, error) {
			waited = id
			return &aws.Instance{ID: id, PublicIP: "203.0.113.9", State: "running"}, nil
		},
		RunInstanceFunc: func(_ context.Context, spec aws.RunSpec) (*aws.Instance, error) {
			t.Fatal("a second instance must not be launched")
			return nil, nil
		},
	}

	ctx := newContext(cloud)
	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Equal(t, "i-pending", waited)
	assert.Equal(t, "i-pending", ctx.State.InstanceID)
	assert.Equal(t, "203.0.113.9", ctx.State.PublicIP)
}

func TestProvision_NoPublicAddressFails(t *testing.T) {
	t.Parallel()
	cloud := &aws.MockClient{
		RunInstanceFunc: func(_ context.Context, spec aws.RunSpec) (*aws.Instance, error) {
			return &aws.Instance{ID: "i-0abc", State: "running"}, nil
		},
	}

	err := NewProvisioner().Provision(newContext(cloud))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no public address")
}

func TestProvision_ImageResolutionFails(t *testing.T) {
	t.Parallel()
	cloud := &aws.MockClient{
		ResolveImageFunc: func(_ context.Context, nameFilter, owner string) (*aws.Image, error) {
			return nil, errors.New("no images matched")
		},
	}

	err := NewProvisioner().Provision(newContext(cloud))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve base image")
}

func TestRenderUserData(t *testing.T) {
	t.Parallel()
	userData, err := renderUserData(userDataParams{SSHUser: "ec2-user"})
	require.NoError(t, err)

	assert.Contains(t, userData, "#!/bin/bash")
	assert.Contains(t, userData, "systemctl enable --now docker")
	assert.Contains(t, userData, "usermod -aG docker ec2-user")
}
