package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	ID string
}

func TestEnsureResourceReusesExisting(t *testing.T) {
	t.Parallel()

	created := false
	resource, didCreate, err := ensureResource(context.Background(), "thing", ReconcileFuncs[fakeResource]{
		Get: func(ctx context.Context, name string) (*fakeResource, error) {
			return &fakeResource{ID: "existing"}, nil
		},
		Create: func(ctx context.Context) (*fakeResource, error) {
			created = true
			return &fakeResource{ID: "new"}, nil
		},
	})

	require.NoError(t, err)
	assert.False(t, didCreate)
	assert.False(t, created, "create must not be called when the resource exists")
	assert.Equal(t, "existing", resource.ID)
}

func TestEnsureResourceCreatesWhenAbsent(t *testing.T) {
	t.Parallel()

	resource, didCreate, err := ensureResource(context.Background(), "thing", ReconcileFuncs[fakeResource]{
		Get: func(ctx context.Context, name string) (*fakeResource, error) {
			return nil, nil
		},
		Create: func(ctx context.Context) (*fakeResource, error) {
			return &fakeResource{ID: "new"}, nil
		},
	})

	require.NoError(t, err)
	assert.True(t, didCreate)
	assert.Equal(t, "new", resource.ID)
}

func TestEnsureResourcePropagatesErrors(t *testing.T) {
	t.Parallel()

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()
		_, _, err := ensureResource(context.Background(), "thing", ReconcileFuncs[fakeResource]{
			Get: func(ctx context.Context, name string) (*fakeResource, error) {
				return nil, errors.New("api down")
			},
			Create: func(ctx context.Context) (*fakeResource, error) {
				t.Fatal("create must not run after a failed lookup")
				return nil, nil
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "look up")
	})

	t.Run("create failure", func(t *testing.T) {
		t.Parallel()
		_, _, err := ensureResource(context.Background(), "thing", ReconcileFuncs[fakeResource]{
			Get: func(ctx context.Context, name string) (*fakeResource, error) {
				return nil, nil
			},
			Create: func(ctx context.Context) (*fakeResource, error) {
				return nil, errors.New("quota exceeded")
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create")
	})
}
