package provisioning

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/util/prerequisites"
)

// PreflightPhase verifies local tooling and provider credentials before
// any resource is touched. If it fails, no provisioning call is made.
type PreflightPhase struct {
	// CheckTools is injectable for tests. Defaults to the standard
	// required-tool check.
	CheckTools func() *prerequisites.CheckResults
}

// NewPreflightPhase creates the preflight phase.
func NewPreflightPhase() *PreflightPhase {
	return &PreflightPhase{CheckTools: prerequisites.CheckDefault}
}

// Name implements the Phase interface.
func (p *PreflightPhase) Name() string {
	return "preflight"
}

// Provision implements the Phase interface.
func (p *PreflightPhase) Provision(ctx *Context) error {
	if ctx.Config.PrerequisitesEnabled() {
		if err := p.CheckTools().Error(); err != nil {
			return err
		}
	} else {
		ctx.Observer.Printf("[preflight] prerequisites check disabled by configuration")
	}

	identity, err := ctx.Cloud.CheckCredentials(ctx)
	if err != nil {
		return fmt.Errorf("AWS credentials are missing or invalid: %w", err)
	}
	ctx.Observer.Printf("[preflight] authenticated as %s (account %s)", identity.ARN, identity.Account)
	return nil
}
