package aws

import (
	"errors"

	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
)

// notFoundCodes are the API error codes the EC2 and Logs APIs return
// when a looked-up resource does not exist. A lookup hitting one of
// these is the create branch of an ensure, never a failure.
var notFoundCodes = map[string]struct{}{
	"InvalidGroup.NotFound":         {},
	"InvalidKeyPair.NotFound":       {},
	"InvalidInstanceID.NotFound":    {},
	"RepositoryNotFoundException":   {},
	"ResourceNotFoundException":     {},
	"InvalidAMIID.NotFound":         {},
	"InvalidSecurityGroupID.NotFound": {},
}

// IsNotFound reports whether err means "resource does not exist".
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	// Typed exceptions where the SDK models them.
	var repoNotFound *ecrtypes.RepositoryNotFoundException
	if errors.As(err, &repoNotFound) {
		return true
	}
	var logNotFound *cwltypes.ResourceNotFoundException
	if errors.As(err, &logNotFound) {
		return true
	}

	// Code-based detection for the EC2 API, which models few errors.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		_, ok := notFoundCodes[apiErr.ErrorCode()]
		return ok
	}
	return false
}

// IsAlreadyExists reports whether err means the resource was created
// by an earlier run (or a concurrent one).
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var logExists *cwltypes.ResourceAlreadyExistsException
	if errors.As(err, &logExists) {
		return true
	}
	var repoExists *ecrtypes.RepositoryAlreadyExistsException
	if errors.As(err, &repoExists) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidGroup.Duplicate", "InvalidKeyPair.Duplicate", "ResourceAlreadyExistsException":
			return true
		}
	}
	return false
}

// IsDependencyViolation reports whether a delete failed because another
// resource still references the target. Retryable while instances drain.
func IsDependencyViolation(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "DependencyViolation"
	}
	return false
}
