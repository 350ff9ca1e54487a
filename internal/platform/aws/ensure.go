package aws

import (
	"context"
	"fmt"
)

// ReconcileFuncs defines the lookup and creation calls for one resource type.
type ReconcileFuncs[T any] struct {
	// Get retrieves the resource by name, returning nil when absent.
	Get func(ctx context.Context, name string) (*T, error)

	// Create creates the resource.
	Create func(ctx context.Context) (*T, error)
}

// ensureResource resolves a resource idempotently: an existing resource
// is returned as-is, an absent one is created. The second result
// reports whether a create happened.
func ensureResource[T any](ctx context.Context, name string, funcs ReconcileFuncs[T]) (*T, bool, error) {
	resource, err := funcs.Get(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up resource %s: %w", name, err)
	}
	if resource != nil {
		return resource, false, nil
	}

	resource, err = funcs.Create(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create resource %s: %w", name, err)
	}
	return resource, true, nil
}
