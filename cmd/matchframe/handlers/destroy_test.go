package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/matchframe/matchframe/internal/outputs"
	"github.com/matchframe/matchframe/internal/platform/aws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestroy_RemovesOutputsFile(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)
	mockCloud(t, &aws.MockClient{
		KeyPairExistsFunc: func(_ context.Context, name string) (bool, error) { return false, nil },
	})
	require.NoError(t, os.WriteFile(outputs.DefaultFile, []byte("REGION=us-east-1\n"), 0o644))

	require.NoError(t, Destroy(context.Background(), "", DestroyOptions{}))

	_, err := os.Stat(outputs.DefaultFile)
	assert.True(t, os.IsNotExist(err), "outputs file should be removed after destroy")
}

func TestDestroy_DeletesRepositoryOnlyWithAll(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)

	var repoDeleted bool
	cloud := &aws.MockClient{
		KeyPairExistsFunc: func(_ context.Context, name string) (bool, error) { return false, nil },
		DeleteRepositoryFunc: func(_ context.Context, name string, force bool) (bool, error) {
			repoDeleted = true
			assert.True(t, force)
			return true, nil
		},
	}
	mockCloud(t, cloud)

	require.NoError(t, Destroy(context.Background(), "", DestroyOptions{}))
	assert.False(t, repoDeleted, "repository must be kept without --all")

	require.NoError(t, Destroy(context.Background(), "", DestroyOptions{RemoveRepository: true}))
	assert.True(t, repoDeleted)
}

func TestDestroy_TerminatesRunningInstance(t *testing.T) {
	t.Chdir(t.TempDir())
	quietConsole(t)

	var terminated string
	mockCloud(t, &aws.MockClient{
		FindInstanceFunc: func(_ context.Context, name string) (*aws.Instance, error) {
			return &aws.Instance{ID: "i-0abc", State: "running"}, nil
		},
		TerminateInstanceFunc: func(_ context.Context, id string) error {
			terminated = id
			return nil
		},
		KeyPairExistsFunc: func(_ context.Context, name string) (bool, error) { return false, nil },
	})

	require.NoError(t, Destroy(context.Background(), "", DestroyOptions{}))
	assert.Equal(t, "i-0abc", terminated)
}
