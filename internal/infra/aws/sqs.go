package aws

import (
	"city-api/pkg/resource"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// NewSqsClient creates the SQS client, pointing it at app.aws.endpoint when set (LocalStack)
func NewSqsClient(cfg aws.Config) *sqs.Client {
	endpoint := resource.GetString("app.aws.endpoint")

	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
