package aws

import (
	"context"
)

// MockClient is a function-field mock implementation of CloudManager.
// Unset fields return benign defaults so tests only wire what they assert.
type MockClient struct {
	EnsureRepositoryFunc func(ctx context.Context, name string) (*Repository, bool, error)
	DeleteRepositoryFunc func(ctx context.Context, name string, force bool) (bool, error)
	RegistryAuthFunc     func(ctx context.Context) (*RegistryAuth, error)

	EnsureSecurityGroupFunc func(ctx context.Context, name, description string, rules []IngressRule) (*SecurityGroup, bool, error)
	DeleteSecurityGroupFunc func(ctx context.Context, name string) (bool, error)

	KeyPairExistsFunc func(ctx context.Context, name string) (bool, error)
	ImportKeyPairFunc func(ctx context.Context, name string, publicKey []byte) (string, error)
	DeleteKeyPairFunc func(ctx context.Context, name string) error

	ResolveImageFunc        func(ctx context.Context, nameFilter, owner string) (*Image, error)
	FindInstanceFunc        func(ctx context.Context, name string) (*Instance, error)
	RunInstanceFunc         func(ctx context.Context, spec RunSpec) (*Instance, error)
	WaitInstanceRunningFunc func(ctx context.Context, id string) (*Instance, error)
	TerminateInstanceFunc   func(ctx context.Context, id string) error

	EnsureLogGroupFunc func(ctx context.Context, name string) (bool, error)
	DeleteLogGroupFunc func(ctx context.Context, name string) (bool, error)

	CheckCredentialsFunc func(ctx context.Context) (*CallerIdentity, error)
}

var _ CloudManager = (*MockClient)(nil)

func (m *MockClient) EnsureRepository(ctx context.Context, name string) (*Repository, bool, error) {
	if m.EnsureRepositoryFunc != nil {
		return m.EnsureRepositoryFunc(ctx, name)
	}
	return &Repository{Name: name, URI: "mock.dkr.ecr.invalid/" + name}, true, nil
}

func (m *MockClient) DeleteRepository(ctx context.Context, name string, force bool) (bool, error) {
	if m.DeleteRepositoryFunc != nil {
		return m.DeleteRepositoryFunc(ctx, name, force)
	}
	return false, nil
}

func (m *MockClient) RegistryAuth(ctx context.Context) (*RegistryAuth, error) {
	if m.RegistryAuthFunc != nil {
		return m.RegistryAuthFunc(ctx)
	}
	return &RegistryAuth{Username: "AWS", Password: "mock", Endpoint: "mock.dkr.ecr.invalid"}, nil
}

func (m *MockClient) EnsureSecurityGroup(ctx context.Context, name, description string, rules []IngressRule) (*SecurityGroup, bool, error) {
	if m.EnsureSecurityGroupFunc != nil {
		return m.EnsureSecurityGroupFunc(ctx, name, description, rules)
	}
	return &SecurityGroup{ID: "sg-mock", Name: name}, true, nil
}

func (m *MockClient) DeleteSecurityGroup(ctx context.Context, name string) (bool, error) {
	if m.DeleteSecurityGroupFunc != nil {
		return m.DeleteSecurityGroupFunc(ctx, name)
	}
	return false, nil
}

func (m *MockClient) KeyPairExists(ctx context.Context, name string) (bool, error) {
	if m.KeyPairExistsFunc != nil {
		return m.KeyPairExistsFunc(ctx, name)
	}
	return false, nil
}

func (m *MockClient) ImportKeyPair(ctx context.Context, name string, publicKey []byte) (string, error) {
	if m.ImportKeyPairFunc != nil {
		return m.ImportKeyPairFunc(ctx, name, publicKey)
	}
	return "key-mock", nil
}

func (m *MockClient) DeleteKeyPair(ctx context.Context, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) ResolveImage(ctx context.Context, nameFilter, owner string) (*Image, error) {
	if m.ResolveImageFunc != nil {
		return m.ResolveImageFunc(ctx, nameFilter, owner)
	}
	return &Image{ID: "ami-mock", Name: "mock-image"}, nil
}

func (m *MockClient) FindInstance(ctx context.Context, name string) (*Instance, error) {
	if m.FindInstanceFunc != nil {
		return m.FindInstanceFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockClient) RunInstance(ctx context.Context, spec RunSpec) (*Instance, error) {
	if m.RunInstanceFunc != nil {
		return m.RunInstanceFunc(ctx, spec)
	}
	return &Instance{ID: "i-mock", PublicIP: "198.51.100.1", State: "running"}, nil
}

func (m *MockClient) WaitInstanceRunning(ctx context.Context, id string) (*Instance, error) {
	if m.WaitInstanceRunningFunc != nil {
		return m.WaitInstanceRunningFunc(ctx, id)
	}
	return &Instance{ID: id, PublicIP: "198.51.100.1", State: "running"}, nil
}

func (m *MockClient) TerminateInstance(ctx context.Context, id string) error {
	if m.TerminateInstanceFunc != nil {
		return m.TerminateInstanceFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) EnsureLogGroup(ctx context.Context, name string) (bool, error) {
	if m.EnsureLogGroupFunc != nil {
		return m.EnsureLogGroupFunc(ctx, name)
	}
	return true, nil
}

func (m *MockClient) DeleteLogGroup(ctx context.Context, name string) (bool, error) {
	if m.DeleteLogGroupFunc != nil {
		return m.DeleteLogGroupFunc(ctx, name)
	}
	return false, nil
}

func (m *MockClient) CheckCredentials(ctx context.Context) (*CallerIdentity, error) {
	if m.CheckCredentialsFunc != nil {
		return m.CheckCredentialsFunc(ctx)
	}
	return &CallerIdentity{Account: "123456789012", ARN: "arn:aws:iam::123456789012:user/mock"}, nil
}
