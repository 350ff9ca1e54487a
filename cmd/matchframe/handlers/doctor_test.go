package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/matchframe/matchframe/internal/platform/aws"
	"github.com/matchframe/matchframe/internal/util/prerequisites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTools(t *testing.T, results *prerequisites.CheckResults) {
	t.Helper()
	orig := checkAllTools
	checkAllTools = func() *prerequisites.CheckResults { return results }
	t.Cleanup(func() { checkAllTools = orig })
}

func TestDoctor_AllChecksPass(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	mockCloud(t, &aws.MockClient{})
	stubTools(t, &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "docker", Required: true}, Found: true, Version: "Docker version 27.0.1"},
		},
	})

	require.NoError(t, Doctor(context.Background(), ""))
}

func TestDoctor_MissingRequiredTool(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	mockCloud(t, &aws.MockClient{})

	missing := prerequisites.Tool{Name: "docker", Required: true, InstallURL: "https://docs.docker.com/engine/install/"}
	stubTools(t, &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{{Tool: missing}},
		Missing: []prerequisites.Tool{missing},
	})

	err := Doctor(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required tools")
}

func TestDoctor_BadCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	stubTools(t, &prerequisites.CheckResults{})
	mockCloud(t, &aws.MockClient{
		CheckCredentialsFunc: func(context.Context) (*aws.CallerIdentity, error) {
			return nil, errors.New("InvalidClientTokenId")
		},
	})

	err := Doctor(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidClientTokenId")
}
