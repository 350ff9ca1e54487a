package aws

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

// EnsureRepository resolves or creates the ECR repository.
func (c *RealClient) EnsureRepository(ctx context.Context, name string) (*Repository, bool, error) {
	return ensureResource(ctx, name, ReconcileFuncs[Repository]{
		Get:    c.getRepository,
		Create: func(ctx context.Context) (*Repository, error) { return c.createRepository(ctx, name) },
	})
}

func (c *RealClient) getRepository(ctx context.Context, name string) (*Repository, error) {
	result, err := c.ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe repository: %w", err)
	}
	if len(result.Repositories) == 0 {
		return nil, nil
	}
	repo := result.Repositories[0]
	return &Repository{
		Name: awssdk.ToString(repo.RepositoryName),
		URI:  awssdk.ToString(repo.RepositoryUri),
	}, nil
}

func (c *RealClient) createRepository(ctx context.Context, name string) (*Repository, error) {
	result, err := c.ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: awssdk.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}
	return &Repository{
		Name: awssdk.ToString(result.Repository.RepositoryName),
		URI:  awssdk.ToString(result.Repository.RepositoryUri),
	}, nil
}

// DeleteRepository removes the repository and reports whether one was
// there to remove.
func (c *RealClient) DeleteRepository(ctx context.Context, name string, force bool) (bool, error) {
	_, err := c.ecr.DeleteRepository(ctx, &ecr.DeleteRepositoryInput{
		RepositoryName: awssdk.String(name),
		Force:          force,
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete repository %s: %w", name, err)
	}
	return true, nil
}

// RegistryAuth fetches and decodes an ECR authorization token. The
// token is base64("user:password"); the user is always "AWS".
func (c *RealClient) RegistryAuth(ctx context.Context) (*RegistryAuth, error) {
	result, err := c.ecr.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get registry authorization token: %w", err)
	}
	if len(result.AuthorizationData) == 0 {
		return nil, fmt.Errorf("registry returned no authorization data")
	}
	data := result.AuthorizationData[0]

	decoded, err := base64.StdEncoding.DecodeString(awssdk.ToString(data.AuthorizationToken))
	if err != nil {
		return nil, fmt.Errorf("failed to decode authorization token: %w", err)
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, fmt.Errorf("authorization token is not in user:password form")
	}

	endpoint := strings.TrimPrefix(awssdk.ToString(data.ProxyEndpoint), "https://")
	return &RegistryAuth{
		Username: username,
		Password: password,
		Endpoint: endpoint,
	}, nil
}
