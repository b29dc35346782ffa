package visit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/redis/go-redis/v9/internal/pool.startGlobalTimeCache.func1"))
}

type addedCity struct {
	visitor, name, countryCode string
}

type fakeStore struct {
	mu         sync.Mutex
	ensured    []string
	added      []addedCity
	ensureErr  error
	aggregates chan entity.VisitAggregate
	errs       chan error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		aggregates: make(chan entity.VisitAggregate),
		errs:       make(chan error, 1),
	}
}

func (f *fakeStore) EnsureDocument(_ context.Context, visitor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ensureErr != nil {
		return f.ensureErr
	}
	f.ensured = append(f.ensured, visitor)
	return nil
}

func (f *fakeStore) AddCity(_ context.Context, visitor, name, countryCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, addedCity{visitor, name, countryCode})
	return nil
}

func (f *fakeStore) WatchAggregates(context.Context) (<-chan entity.VisitAggregate, <-chan error) {
	return f.aggregates, f.errs
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []model.VisitNotification
}

func (f *fakeNotifier) NotifyVisits(_ context.Context, n model.VisitNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotifier) sent() []model.VisitNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.VisitNotification(nil), f.notifications...)
}

type fakeSender struct {
	queueName string
	bodies    []any
	err       error
}

func (f *fakeSender) SendMessage(_ context.Context, queueName string, body any) error {
	f.queueName = queueName
	f.bodies = append(f.bodies, body)
	return f.err
}

func (f *fakeSender) SendMessageBatch(context.Context, string, []queue.BatchMessage) (*queue.BatchResult, error) {
	return &queue.BatchResult{}, nil
}

func aggregateOf(counts map[string]int) entity.VisitAggregate {
	aggregate := entity.VisitAggregate{}
	for name, count := range counts {
		aggregate[entity.VisitKey{Name: name, CountryCode: "XX"}] = count
	}
	return aggregate
}

func TestRecordVisit_DefaultsVisitorToNamespace(t *testing.T) {
	store := newFakeStore()
	useCase := NewVisitUseCase("device-1", "", store, nil, nil)

	require.NoError(t, useCase.RecordVisit(context.Background(), model.VisitDTO{Name: " Lisbon ", CountryCode: "PT"}))

	assert.Equal(t, []string{"device-1"}, store.ensured)
	assert.Equal(t, []addedCity{{"device-1", "Lisbon", "PT"}}, store.added)
}

func TestRecordVisit_Validation(t *testing.T) {
	store := newFakeStore()
	useCase := NewVisitUseCase("device-1", "", store, nil, nil)

	err := useCase.RecordVisit(context.Background(), model.VisitDTO{Name: "Lisbon"})
	assert.ErrorIs(t, err, model.ErrInvalidVisit)
	assert.Empty(t, store.ensured)
}

func TestRecordVisit_StopsWhenDocumentCannotBeCreated(t *testing.T) {
	store := newFakeStore()
	store.ensureErr = errors.New("permission denied")
	useCase := NewVisitUseCase("device-1", "", store, nil, nil)

	err := useCase.RecordVisit(context.Background(), model.VisitDTO{Name: "Lisbon", CountryCode: "PT", Visitor: "alice"})
	assert.EqualError(t, err, "permission denied")
	assert.Empty(t, store.added)
}

func TestEnqueueVisit_QueuesWhenConfigured(t *testing.T) {
	store := newFakeStore()
	sender := &fakeSender{}
	useCase := NewVisitUseCase("device-1", "city-visits", store, sender, nil)

	queued, err := useCase.EnqueueVisit(context.Background(), model.VisitDTO{Name: "Lima", CountryCode: "PE"})

	require.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, "city-visits", sender.queueName)
	assert.Equal(t, []any{model.VisitDTO{Name: "Lima", CountryCode: "PE", Visitor: "device-1"}}, sender.bodies)
	assert.Empty(t, store.added)
}

func TestEnqueueVisit_RecordsDirectlyWithoutQueue(t *testing.T) {
	store := newFakeStore()
	useCase := NewVisitUseCase("device-1", "", store, nil, nil)

	queued, err := useCase.EnqueueVisit(context.Background(), model.VisitDTO{Name: "Lima", CountryCode: "PE", Visitor: "bob"})

	require.NoError(t, err)
	assert.False(t, queued)
	assert.Equal(t, []addedCity{{"bob", "Lima", "PE"}}, store.added)
}

func TestEnqueueVisit_SendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("throttled")}
	useCase := NewVisitUseCase("device-1", "city-visits", newFakeStore(), sender, nil)

	queued, err := useCase.EnqueueVisit(context.Background(), model.VisitDTO{Name: "Lima", CountryCode: "PE"})
	assert.False(t, queued)
	assert.ErrorContains(t, err, "throttled")
}

func receive(t *testing.T, events <-chan entity.VisitEvent) entity.VisitEvent {
	t.Helper()
	select {
	case event := <-events:
		return event
	case <-time.After(time.Second):
		t.Fatal("no visit event received")
		return entity.VisitEvent{}
	}
}

func TestWatch_NotifiesOnlyWhenTotalIncreases(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	useCase := NewVisitUseCase("device-1", "", store, nil, notifier)

	events, cancelSub := useCase.Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- useCase.Watch(ctx) }()

	store.aggregates <- aggregateOf(map[string]int{"Lisbon": 2})
	first := receive(t, events)
	assert.False(t, first.Notify)
	assert.Equal(t, 2, first.Total)

	store.aggregates <- aggregateOf(map[string]int{"Lisbon": 2, "Lima": 1})
	second := receive(t, events)
	assert.True(t, second.Notify)
	assert.Equal(t, 2, second.Previous)

	store.aggregates <- aggregateOf(map[string]int{"Lisbon": 3})
	third := receive(t, events)
	assert.False(t, third.Notify)

	store.aggregates <- aggregateOf(map[string]int{"Lisbon": 1})
	assert.False(t, receive(t, events).Notify)

	assert.Equal(t, []model.VisitNotification{{Previous: 2, Total: 3}}, notifier.sent())
	assert.Equal(t, 1, useCase.Latest()[entity.VisitKey{Name: "Lisbon", CountryCode: "XX"}])

	cancel()
	close(store.aggregates)
	close(store.errs)
	assert.NoError(t, <-done)
}

func TestWatch_ReturnsListenerError(t *testing.T) {
	store := newFakeStore()
	useCase := NewVisitUseCase("device-1", "", store, nil, nil)

	store.errs <- errors.New("unavailable")
	close(store.aggregates)
	close(store.errs)

	assert.EqualError(t, useCase.Watch(context.Background()), "unavailable")
}

func TestLatest_EmptyBeforeFirstSnapshot(t *testing.T) {
	useCase := NewVisitUseCase("device-1", "", newFakeStore(), nil, nil)
	assert.NotNil(t, useCase.Latest())
	assert.Empty(t, useCase.Latest())
}

func TestBroadcaster_SlowSubscriberGetsLatestEvent(t *testing.T) {
	b := newBroadcaster()
	events, cancel := b.subscribe()

	b.broadcast(entity.VisitEvent{Total: 1})
	b.broadcast(entity.VisitEvent{Total: 2, Previous: 1, Notify: true})
	b.broadcast(entity.VisitEvent{Total: 3, Previous: 2})

	event := <-events
	assert.Equal(t, 3, event.Total)
	assert.True(t, event.Notify)
	assert.Equal(t, 1, event.Previous)

	cancel()
	cancel()
	_, open := <-events
	assert.False(t, open)
	assert.Zero(t, b.count())
}

func TestBroadcaster_FansOutToAllSubscribers(t *testing.T) {
	b := newBroadcaster()
	first, cancelFirst := b.subscribe()
	second, cancelSecond := b.subscribe()
	defer cancelFirst()
	defer cancelSecond()

	b.broadcast(entity.VisitEvent{Total: 5})

	assert.Equal(t, 5, (<-first).Total)
	assert.Equal(t, 5, (<-second).Total)
	assert.Equal(t, 2, b.count())
}
