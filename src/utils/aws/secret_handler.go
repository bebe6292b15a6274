package aws_handler

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

// secretsAPI is the subset of the Secrets Manager client used here.
type secretsAPI interface {
	GetSecretValueWithContext(ctx aws.Context, input *secretsmanager.GetSecretValueInput, opts ...request.Option) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretManager struct {
	svc secretsAPI
}

func NewSecretManager(svc secretsAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}
	return *result.SecretString, nil
}

// ResolveInto replaces *target with the value of secretID when secretID is set.
func (s *SecretManager) ResolveInto(ctx context.Context, secretID string, target *string) error {
	if secretID == "" {
		return nil
	}
	value, err := s.GetSecretValue(ctx, secretID)
	if err != nil {
		return err
	}
	*target = value
	return nil
}
