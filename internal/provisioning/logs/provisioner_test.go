package logs

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

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "logs", NewProvisioner().Name())
}

func TestProvision_EnsuresLogGroup(t *testing.T) {
	t.Parallel()
	var gotName string
	cloud := &aws.MockClient{
		EnsureLogGroupFunc: func(_ context.Context, name string) (bool, error) {
			gotName = name
			return true, nil
		},
	}

	ctx := provisioning.NewContext(context.Background(), config.Default(), cloud)
	require.NoError(t, NewProvisioner().Provision(ctx))

	assert.Equal(t, "/matchframe/sports-analytics", gotName)
	assert.Equal(t, "/matchframe/sports-analytics", ctx.State.LogGroup)
}

func TestProvision_PropagatesError(t *testing.T) {
	t.Parallel()
	cloud := &aws.MockClient{
		EnsureLogGroupFunc: func(_ context.Context, name string) (bool, error) {
			return false, errors.New("ThrottlingException")
		},
	}

	ctx := provisioning.NewContext(context.Background(), config.Default(), cloud)
	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure log group")
}
