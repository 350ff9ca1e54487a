package provisioning

import (
	"context"

	"github.com/matchframe/matchframe/internal/config"
	"github.com/matchframe/matchframe/internal/platform/aws"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Registry results
	RepositoryURI string

	// Network results
	SecurityGroupID string

	// Access results
	KeyName        string
	PrivateKey     []byte // PEM, available whether generated or loaded
	PrivateKeyPath string

	// Compute results
	ImageID    string
	InstanceID string
	PublicIP   string

	// Logs results
	LogGroup string

	// Deploy results
	ImageReference string // fully qualified pushed reference
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    aws.CloudManager
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, cloud aws.CloudManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    &State{},
		Cloud:    cloud,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
