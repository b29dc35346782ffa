package store

import (
	"context"
	"errors"
	"fmt"

	"city-api/internal/domain/entity"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreVisitStore struct {
	client     *firestore.Client
	collection string
}

var _ VisitStore = (*FirestoreVisitStore)(nil)

func NewFirestoreVisitStore(client *firestore.Client, collection string) *FirestoreVisitStore {
	return &FirestoreVisitStore{client: client, collection: collection}
}

func (s *FirestoreVisitStore) EnsureDocument(ctx context.Context, visitor string) error {
	_, err := s.client.Collection(s.collection).Doc(visitor).Create(ctx, map[string]any{
		citiesField: []any{},
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to create visitor document %s: %w", visitor, err)
	}
	return nil
}

func (s *FirestoreVisitStore) AddCity(ctx context.Context, visitor string, name string, countryCode string) error {
	_, err := s.client.Collection(s.collection).Doc(visitor).Update(ctx, []firestore.Update{{
		Path: citiesField,
		Value: firestore.ArrayUnion(map[string]any{
			nameField:        name,
			countryCodeField: countryCode,
		}),
	}})
	if err != nil {
		return fmt.Errorf("failed to add city %s to visitor %s: %w", name, visitor, err)
	}
	return nil
}

func (s *FirestoreVisitStore) WatchAggregates(ctx context.Context) (<-chan entity.VisitAggregate, <-chan error) {
	aggregates := make(chan entity.VisitAggregate)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(aggregates)

		snapshots := s.client.Collection(s.collection).Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snapshot, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					errs <- fmt.Errorf("visit listener failed: %w", err)
				}
				return
			}

			docs, err := readDocuments(snapshot.Documents)
			if err != nil {
				errs <- err
				return
			}

			select {
			case aggregates <- Aggregate(docs):
			case <-ctx.Done():
				return
			}
		}
	}()

	return aggregates, errs
}

func readDocuments(it *firestore.DocumentIterator) ([]map[string]any, error) {
	defer it.Stop()

	docs := make([]map[string]any, 0)
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read visitor document: %w", err)
		}
		docs = append(docs, doc.Data())
	}
}
