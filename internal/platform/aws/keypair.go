package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// KeyPairExists reports whether a key pair with the name is registered.
func (c *RealClient) KeyPairExists(ctx context.Context, name string) (bool, error) {
	result, err := c.ec2.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe key pair: %w", err)
	}
	return len(result.KeyPairs) > 0, nil
}

// ImportKeyPair registers the public half of a locally generated key pair.
func (c *RealClient) ImportKeyPair(ctx context.Context, name string, publicKey []byte) (string, error) {
	result, err := c.ec2.ImportKeyPair(ctx, &ec2.ImportKeyPairInput{
		KeyName:           awssdk.String(name),
		PublicKeyMaterial: publicKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to import key pair: %w", err)
	}
	return awssdk.ToString(result.KeyPairId), nil
}

// DeleteKeyPair removes the key pair; absent pairs are skipped.
func (c *RealClient) DeleteKeyPair(ctx context.Context, name string) error {
	_, err := c.ec2.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
		KeyName: awssdk.String(name),
	})
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete key pair %s: %w", name, err)
	}
	return nil
}
