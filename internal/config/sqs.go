package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/caarlos0/env/v11"
)

type SQSConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	Endpoint        string `env:"AWS_SQS_ENDPOINT" envDefault:"http://localhost:4566"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"dummy"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"dummy"`
	IndexQueueURL   string `env:"AWS_SQS_INDEX_QUEUE_URL" envDefault:"http://localhost:4566/000000000000/security-event-index-queue"`
	ArchiveQueueURL string `env:"AWS_SQS_ARCHIVE_QUEUE_URL" envDefault:"http://localhost:4566/000000000000/security-event-archive-queue"`
}

func LoadSQSConfig() (*SQSConfig, error) {
	cfg := &SQSConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sqs config: %w", err)
	}
	return cfg, nil
}

func (c *SQSConfig) GetClient(ctx context.Context) (*sqs.Client, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == sqs.ServiceID {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           c.Endpoint,
				SigningRegion: c.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKeyID,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return sqs.NewFromConfig(cfg), nil
}
