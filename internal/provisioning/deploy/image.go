// Package deploy builds and pushes the application image and starts it
// on the provisioned instance.
package deploy

import (
	"fmt"

	"github.com/matchframe/matchframe/internal/platform/docker"
	"github.com/matchframe/matchframe/internal/provisioning"
)

const imagePhase = "image"

// ImagePhase builds the application image, tags it against the
// repository, authenticates, and pushes.
type ImagePhase struct {
	// Engine is injectable for tests.
	Engine *docker.Engine
}

// NewImagePhase creates the image build and push phase.
func NewImagePhase() *ImagePhase {
	return &ImagePhase{Engine: docker.NewEngine()}
}

// Name implements the provisioning.Phase interface.
func (p *ImagePhase) Name() string {
	return imagePhase
}

// Provision implements the provisioning.Phase interface.
func (p *ImagePhase) Provision(ctx *provisioning.Context) error {
	if ctx.State.RepositoryURI == "" {
		return fmt.Errorf("no repository recorded, registry phase must run first")
	}

	localRef := fmt.Sprintf("%s:%s", ctx.Config.AppName, ctx.Config.Image.Tag)
	remoteRef := fmt.Sprintf("%s:%s", ctx.State.RepositoryURI, ctx.Config.Image.Tag)

	ctx.Observer.Printf("[%s] building %s from %s", imagePhase, localRef, ctx.Config.Image.BuildContext)
	if err := p.Engine.Build(ctx, ctx.Config.Image.BuildContext, ctx.Config.Image.Dockerfile, localRef); err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}

	if err := p.Engine.Tag(ctx, localRef, remoteRef); err != nil {
		return fmt.Errorf("failed to tag image: %w", err)
	}

	auth, err := ctx.Cloud.RegistryAuth(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain registry credentials: %w", err)
	}
	if err := p.Engine.Login(ctx, auth.Endpoint, auth.Username, auth.Password); err != nil {
		return fmt.Errorf("failed to log in to registry: %w", err)
	}

	ctx.Observer.Printf("[%s] pushing %s", imagePhase, remoteRef)
	if err := p.Engine.Push(ctx, remoteRef); err != nil {
		return fmt.Errorf("failed to push image: %w", err)
	}

	ctx.State.ImageReference = remoteRef
	return nil
}
