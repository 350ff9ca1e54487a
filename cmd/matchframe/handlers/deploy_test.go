package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/provisioning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubDeployPhases(t *testing.T, phases []provisioning.Phase) {
	t.Helper()
	orig := deployPhases
	deployPhases = func() []provisioning.Phase { return phases }
	t.Cleanup(func() { deployPhases = orig })
}

func writeRecordedRun(t *testing.T) {
	t.Helper()
	record := &outputs.Outputs{
		Region:          "eu-central-1",
		RepositoryURI:   "uri/app",
		SecurityGroupID: "sg-0123",
		InstanceID:      "i-0abc",
		PublicIP:        "198.51.100.1",
	}
	require.NoError(t, record.Write(outputs.DefaultFile))
	require.NoError(t, os.WriteFile("matchframe-key.pem", []byte("pem"), 0o600))
}

func TestDeploy_PrefillsStateFromOutputs(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	mockCloud(t, &aws.MockClient{})
	writeRecordedRun(t)

	var seen *provisioning.State
	stubDeployPhases(t, []provisioning.Phase{
		&fakePhase{name: "stub", run: func(ctx *provisioning.Context) error {
			seen = ctx.State
			assert.Equal(t, "eu-central-1", ctx.Config.Region, "outputs region wins over config")
			return nil
		}},
	})

	require.NoError(t, Deploy(context.Background(), "", ""))

	require.NotNil(t, seen)
	assert.Equal(t, "uri/app", seen.RepositoryURI)
	assert.Equal(t, "198.51.100.1", seen.PublicIP)
	assert.Equal(t, []byte("pem"), seen.PrivateKey)
	assert.Equal(t, "/matchframe/sports-analytics", seen.LogGroup)
}

func TestDeploy_NoOutputsFile(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)

	err := Deploy(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 'matchframe up' first")
}

func TestDeploy_IncompleteOutputs(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	require.NoError(t, os.WriteFile(outputs.DefaultFile, []byte("REGION=us-east-1\n"), 0o644))

	err := Deploy(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestDeploy_MissingPrivateKey(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	record := &outputs.Outputs{
		Region: "us-east-1", RepositoryURI: "uri/app", SecurityGroupID: "sg-1",
		InstanceID: "i-1", PublicIP: "198.51.100.1",
	}
	require.NoError(t, record.Write(outputs.DefaultFile))

	err := Deploy(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read private key")
}
