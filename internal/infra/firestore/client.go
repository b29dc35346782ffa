package firestore

import (
	"context"
	"fmt"

	"city-api/pkg/resource"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewClient opens a Firestore client for app.visits.project-id.
// Without a credentials file the client uses application default credentials,
// or the emulator when FIRESTORE_EMULATOR_HOST is set.
func NewClient(ctx context.Context) (*firestore.Client, error) {
	projectID := resource.GetString("app.visits.project-id")
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var options []option.ClientOption
	if credentialsFile := resource.GetString("app.visits.credentials-file"); credentialsFile != "" {
		options = append(options, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
