package deploy

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matchframe/matchframe/internal/config"
	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/platform/docker"
	"github.com/matchframe/matchframe/internal/platform/ssh"
	"github.com/matchframe/matchframe/internal/provisioning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommunicator records uploads and executed commands.
type fakeCommunicator struct {
	uploads  map[string][]byte
	modes    map[string]uint32
	commands []string
	execErr  error
}

func newFakeCommunicator() *fakeCommunicator {
	return &fakeCommunicator{
		uploads: make(map[string][]byte),
		modes:   make(map[string]uint32),
	}
}

func (f *fakeCommunicator) Execute(_ context.Context, command string) (string, error) {
	f.commands = append(f.commands, command)
	if f.execErr != nil {
		return "", f.execErr
	}
	return "", nil
}

func (f *fakeCommunicator) Upload(_ context.Context, content []byte, remotePath string, mode uint32) error {
	f.uploads[remotePath] = content
	f.modes[remotePath] = mode
	return nil
}

func deployContext() *provisioning.Context {
	cfg := config.Default()
	ctx := provisioning.NewContext(context.Background(), cfg, &aws.MockClient{})
	ctx.State.PublicIP = "198.51.100.1"
	ctx.State.ImageReference = "mock.dkr.ecr.invalid/sports-analytics:latest"
	ctx.State.LogGroup = "/matchframe/sports-analytics"
	ctx.State.PrivateKey = []byte("irrelevant")
	return ctx
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "deploy", NewProvisioner().Name())
}

func TestProvisioner_UploadsAndRunsScript(t *testing.T) {
	t.Parallel()
	comm := newFakeCommunicator()
	p := NewProvisioner()
	p.NewCommunicator = func(host, user string, privateKey []byte) ssh.Communicator {
		assert.Equal(t, "198.51.100.1", host)
		assert.Equal(t, "ec2-user", user)
		return comm
	}

	ctx := deployContext()
	require.NoError(t, p.Provision(ctx))

	script, ok := comm.uploads[remoteScriptPath]
	require.True(t, ok, "script should be uploaded")
	assert.Equal(t, uint32(0o700), comm.modes[remoteScriptPath])
	assert.Contains(t, string(script), "docker pull 'mock.dkr.ecr.invalid/sports-analytics:latest'")
	assert.Contains(t, string(script), "--log-opt awslogs-group='/matchframe/sports-analytics'")

	require.Len(t, comm.commands, 2)
	assert.Equal(t, "bash "+remoteScriptPath+" 'mock'", comm.commands[0])
	assert.Equal(t, "rm -f "+remoteScriptPath, comm.commands[1])
}

func TestProvisioner_PasswordNotInScript(t *testing.T) {
	t.Parallel()
	comm := newFakeCommunicator()
	p := NewProvisioner()
	p.NewCommunicator = func(string, string, []byte) ssh.Communicator { return comm }

	ctx := deployContext()
	ctx.Cloud = &aws.MockClient{
		RegistryAuthFunc: func(context.Context) (*aws.RegistryAuth, error) {
			return &aws.RegistryAuth{Username: "AWS", Password: "s3cret-token", Endpoint: "mock.dkr.ecr.invalid"}, nil
		},
	}

	require.NoError(t, p.Provision(ctx))
	assert.NotContains(t, string(comm.uploads[remoteScriptPath]), "s3cret-token")
	assert.Contains(t, comm.commands[0], "'s3cret-token'")
}

func TestProvisioner_MissingState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*provisioning.State)
		wantErr string
	}{
		{
			name:    "no public address",
			mutate:  func(s *provisioning.State) { s.PublicIP = "" },
			wantErr: "no public address",
		},
		{
			name:    "no pushed image",
			mutate:  func(s *provisioning.State) { s.ImageReference = "" },
			wantErr: "no pushed image",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProvisioner()
			p.NewCommunicator = func(string, string, []byte) ssh.Communicator { return newFakeCommunicator() }

			ctx := deployContext()
			tt.mutate(ctx.State)
			err := p.Provision(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProvisioner_ScriptFailureIsFatal(t *testing.T) {
	t.Parallel()
	comm := newFakeCommunicator()
	comm.execErr = errors.New("exit status 1")

	p := NewProvisioner()
	p.NewCommunicator = func(string, string, []byte) ssh.Communicator { return comm }

	err := p.Provision(deployContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run deploy script")
}

func TestImagePhase_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "image", NewImagePhase().Name())
}

func TestImagePhase_RequiresRepository(t *testing.T) {
	t.Parallel()
	p := NewImagePhase()
	cfg := config.Default()
	ctx := provisioning.NewContext(context.Background(), cfg, &aws.MockClient{})

	err := p.Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no repository recorded")
}

func TestImagePhase_BuildsTagsAndPushes(t *testing.T) {
	t.Parallel()
	p := NewImagePhase()
	p.Engine = docker.NewEngine(
		docker.WithBinary("true"),
		docker.WithOutput(io.Discard, io.Discard),
	)

	cfg := config.Default()
	ctx := provisioning.NewContext(context.Background(), cfg, &aws.MockClient{})
	ctx.State.RepositoryURI = "mock.dkr.ecr.invalid/sports-analytics"

	require.NoError(t, p.Provision(ctx))
	assert.Equal(t, "mock.dkr.ecr.invalid/sports-analytics:"+cfg.Image.Tag, ctx.State.ImageReference)
	assert.True(t, strings.HasSuffix(ctx.State.ImageReference, ":latest"))
}
