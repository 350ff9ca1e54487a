package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
)

// EnsureLogGroup creates the log group if absent and reports whether a
// create happened. A creation race with another run is treated as the
// reuse branch.
func (c *RealClient) EnsureLogGroup(ctx context.Context, name string) (bool, error) {
	exists, err := c.logGroupExists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = c.logs.CreateLogGroup(ctx, &cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: awssdk.String(name),
	})
	if err != nil {
		if IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create log group %s: %w", name, err)
	}
	return true, nil
}

func (c *RealClient) logGroupExists(ctx context.Context, name string) (bool, error) {
	result, err := c.logs.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: awssdk.String(name),
	})
	if err != nil {
		return false, fmt.Errorf("failed to describe log groups: %w", err)
	}
	// Prefix match: confirm an exact name is present.
	for _, group := range result.LogGroups {
		if awssdk.ToString(group.LogGroupName) == name {
			return true, nil
		}
	}
	return false, nil
}

// DeleteLogGroup removes the log group and reports whether one was
// there to remove.
func (c *RealClient) DeleteLogGroup(ctx context.Context, name string) (bool, error) {
	_, err := c.logs.DeleteLogGroup(ctx, &cloudwatchlogs.DeleteLogGroupInput{
		LogGroupName: awssdk.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete log group %s: %w", name, err)
	}
	return true, nil
}
