package aws

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// ResolveImage returns the newest available image matching the name
// filter for the given owner, ordered by creation date.
func (c *RealClient) ResolveImage(ctx context.Context, nameFilter, owner string) (*Image, error) {
	result, err := c.ec2.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{owner},
		Filters: []ec2types.Filter{
			{Name: awssdk.String("name"), Values: []string{nameFilter}},
			{Name: awssdk.String("state"), Values: []string{"available"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe images: %w", err)
	}
	if len(result.Images) == 0 {
		return nil, fmt.Errorf("no image matches filter %q for owner %q", nameFilter, owner)
	}

	images := result.Images
	// CreationDate is RFC 3339, so lexical order is chronological.
	sort.Slice(images, func(i, j int) bool {
		return awssdk.ToString(images[i].CreationDate) > awssdk.ToString(images[j].CreationDate)
	})

	newest := images[0]
	return &Image{
		ID:           awssdk.ToString(newest.ImageId),
		Name:         awssdk.ToString(newest.Name),
		CreationDate: awssdk.ToString(newest.CreationDate),
	}, nil
}

// FindInstance returns the pending or running instance carrying the
// given Name tag, or nil if none exists.
func (c *RealClient) FindInstance(ctx context.Context, name string) (*Instance, error) {
	result, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{Name: awssdk.String("tag:Name"), Values: []string{name}},
			{Name: awssdk.String("instance-state-name"), Values: []string{"pending", "running"}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instances: %w", err)
	}

	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			return instanceFromSDK(instance), nil
		}
	}
	return nil, nil
}

// RunInstance launches one instance and blocks until the provider
// reports it running, then re-describes it to pick up the public IP.
func (c *RealClient) RunInstance(ctx context.Context, spec RunSpec) (*Instance, error) {
	tags := make([]ec2types.Tag, 0, len(spec.Tags)+1)
	tags = append(tags, ec2types.Tag{Key: awssdk.String("Name"), Value: awssdk.String(spec.Name)})
	for key, value := range spec.Tags {
		tags = append(tags, ec2types.Tag{Key: awssdk.String(key), Value: awssdk.String(value)})
	}

	input := &ec2.RunInstancesInput{
		ImageId:          awssdk.String(spec.ImageID),
		InstanceType:     ec2types.InstanceType(spec.InstanceType),
		KeyName:          awssdk.String(spec.KeyName),
		SecurityGroupIds: []string{spec.SecurityGroupID},
		MinCount:         awssdk.Int32(1),
		MaxCount:         awssdk.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{
			{ResourceType: ec2types.ResourceTypeInstance, Tags: tags},
		},
	}
	if spec.UserData != "" {
		input.UserData = awssdk.String(base64.StdEncoding.EncodeToString([]byte(spec.UserData)))
	}

	launched, err := c.ec2.RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to launch instance: %w", err)
	}
	if len(launched.Instances) == 0 {
		return nil, fmt.Errorf("launch call returned no instances")
	}
	instanceID := awssdk.ToString(launched.Instances[0].InstanceId)
	if instanceID == "" {
		return nil, fmt.Errorf("launch call returned an empty instance ID")
	}

	return c.WaitInstanceRunning(ctx, instanceID)
}

// WaitInstanceRunning blocks until the instance reaches the running
// state, then re-describes it to pick up the public IP.
func (c *RealClient) WaitInstanceRunning(ctx context.Context, id string) (*Instance, error) {
	waiter := ec2.NewInstanceRunningWaiter(c.ec2)
	describeInput := &ec2.DescribeInstancesInput{InstanceIds: []string{id}}
	if err := waiter.Wait(ctx, describeInput, c.timeouts.InstanceRunning); err != nil {
		return nil, fmt.Errorf("instance %s did not reach running state: %w", id, err)
	}

	// Re-describe: the public IP is only assigned once running.
	described, err := c.ec2.DescribeInstances(ctx, describeInput)
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", id, err)
	}
	if len(described.Reservations) == 0 || len(described.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("instance %s disappeared", id)
	}
	return instanceFromSDK(described.Reservations[0].Instances[0]), nil
}

// TerminateInstance terminates the instance and blocks until done.
func (c *RealClient) TerminateInstance(ctx context.Context, id string) error {
	_, err := c.ec2.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to terminate instance %s: %w", id, err)
	}

	waiter := ec2.NewInstanceTerminatedWaiter(c.ec2)
	input := &ec2.DescribeInstancesInput{InstanceIds: []string{id}}
	if err := waiter.Wait(ctx, input, c.timeouts.Delete); err != nil {
		return fmt.Errorf("instance %s did not reach terminated state: %w", id, err)
	}
	return nil
}

func instanceFromSDK(instance ec2types.Instance) *Instance {
	out := &Instance{
		ID:       awssdk.ToString(instance.InstanceId),
		PublicIP: awssdk.ToString(instance.PublicIpAddress),
	}
	if instance.State != nil {
		out.State = string(instance.State.Name)
	}
	return out
}
