package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/matchframe/matchframe/internal/config"
)

// RealClient implements CloudManager against the AWS APIs.
type RealClient struct {
	ec2      *ec2.Client
	ecr      *ecr.Client
	logs     *cloudwatchlogs.Client
	sts      *sts.Client
	region   string
	timeouts *config.Timeouts
}

var _ CloudManager = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// NewRealClient builds a client for the given region using the default
// credential chain (environment, shared config, instance role).
func NewRealClient(ctx context.Context, region string, opts ...ClientOption) (*RealClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	c := &RealClient{
		ec2:      ec2.NewFromConfig(cfg),
		ecr:      ecr.NewFromConfig(cfg),
		logs:     cloudwatchlogs.NewFromConfig(cfg),
		sts:      sts.NewFromConfig(cfg),
		region:   region,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Region returns the region this client talks to.
func (c *RealClient) Region() string {
	return c.region
}

// CheckCredentials performs an STS GetCallerIdentity call, the cheapest
// authenticated operation AWS offers.
func (c *RealClient) CheckCredentials(ctx context.Context) (*CallerIdentity, error) {
	result, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("credentials check failed: %w", err)
	}
	return &CallerIdentity{
		Account: awssdk.ToString(result.Account),
		ARN:     awssdk.ToString(result.Arn),
	}, nil
}
