package aws

import (
	"context"

	"city-api/pkg/resource"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadConfig loads the AWS configuration for the configured region.
// Static credentials are used when both keys are set; otherwise the default chain applies
// (environment variables, shared profile, IAM roles).
func LoadConfig(ctx context.Context) (aws.Config, error) {
	options := []func(*config.LoadOptions) error{
		config.WithRegion(resource.GetString("app.aws.region")),
	}

	accessKey := resource.GetString("app.aws.access-key")
	secretKey := resource.GetString("app.aws.secret-key")
	if accessKey != "" && secretKey != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	return config.LoadDefaultConfig(ctx, options...)
}
