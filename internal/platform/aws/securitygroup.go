package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/matchframe/matchframe/internal/util/retry"
)

// EnsureSecurityGroup resolves or creates the security group. Ingress
// rules are authorized only on the create path; an existing group is
// reused exactly as found.
func (c *RealClient) EnsureSecurityGroup(ctx context.Context, name, description string, rules []IngressRule) (*SecurityGroup, bool, error) {
	return ensureResource(ctx, name, ReconcileFuncs[SecurityGroup]{
		Get: c.getSecurityGroup,
		Create: func(ctx context.Context) (*SecurityGroup, error) {
			return c.createSecurityGroup(ctx, name, description, rules)
		},
	})
}

func (c *RealClient) getSecurityGroup(ctx context.Context, name string) (*SecurityGroup, error) {
	result, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("group-name"), Values: []string{name}},
		},
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe security group: %w", err)
	}
	if len(result.SecurityGroups) == 0 {
		return nil, nil
	}
	group := result.SecurityGroups[0]
	return &SecurityGroup{
		ID:   awssdk.ToString(group.GroupId),
		Name: awssdk.ToString(group.GroupName),
	}, nil
}

func (c *RealClient) createSecurityGroup(ctx context.Context, name, description string, rules []IngressRule) (*SecurityGroup, error) {
	created, err := c.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   awssdk.String(name),
		Description: awssdk.String(description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create security group: %w", err)
	}
	groupID := awssdk.ToString(created.GroupId)

	for _, rule := range rules {
		_, err := c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId:    awssdk.String(groupID),
			IpProtocol: awssdk.String("tcp"),
			FromPort:   awssdk.Int32(rule.Port),
			ToPort:     awssdk.Int32(rule.Port),
			CidrIp:     awssdk.String(rule.CIDR),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to authorize ingress on port %d: %w", rule.Port, err)
		}
	}

	return &SecurityGroup{ID: groupID, Name: name}, nil
}

// DeleteSecurityGroup removes the group by name and reports whether a
// group was there to remove. Deletion is retried with backoff while a
// terminating instance still holds a reference.
func (c *RealClient) DeleteSecurityGroup(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	deleted := false
	err := retry.WithExponentialBackoff(ctx, func() error {
		group, err := c.getSecurityGroup(ctx, name)
		if err != nil {
			return retry.Fatal(err)
		}
		if group == nil {
			return nil // already gone
		}

		_, err = c.ec2.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
			GroupId: awssdk.String(group.ID),
		})
		if err != nil {
			if IsDependencyViolation(err) {
				return err
			}
			return retry.Fatal(fmt.Errorf("failed to delete security group %s: %w", name, err))
		}
		deleted = true
		return nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	return deleted, err
}
