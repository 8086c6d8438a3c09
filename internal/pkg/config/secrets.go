// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// AWSSecretsManager resolves secrets such as the database DSN from AWS
// Secrets Manager. Values are cached to keep repeated pool initializations
// from hammering the API.
type AWSSecretsManager struct {
	client     *secretsmanager.Client
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSecretsManager{
		client:     secretsmanager.NewFromConfig(cfg),
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		logger:     logger,
	}, nil
}

// GetSecret retrieves a single value from the secret. The secret payload is
// expected to be a JSON object; a plain-string payload is returned under
// the key "dsn".
func (sm *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	sm.cacheMu.RLock()
	if time.Since(sm.lastFetch) < sm.ttl {
		if val, ok := sm.cache[key]; ok {
			sm.cacheMu.RUnlock()
			return val, nil
		}
	}
	sm.cacheMu.RUnlock()

	sm.logger.Info("fetching secret from AWS Secrets Manager",
		slog.String("secret_name", sm.secretName))

	input := &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(sm.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	}

	result, err := sm.client.GetSecretValue(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to get secret value: %w", err)
	}

	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", sm.secretName)
	}

	values := make(map[string]string)
	if err := json.Unmarshal([]byte(*result.SecretString), &values); err != nil {
		// Not JSON; treat the whole payload as the DSN.
		values = map[string]string{"dsn": *result.SecretString}
	}

	sm.cacheMu.Lock()
	sm.cache = values
	sm.lastFetch = time.Now()
	sm.cacheMu.Unlock()

	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("secret key %s not found in %s", key, sm.secretName)
	}

	return val, nil
}
