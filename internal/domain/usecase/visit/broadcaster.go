package visit

import (
	"sync"

	"city-api/internal/domain/entity"
)

// broadcaster fans events out to subscribers. Each subscriber holds at most one
// pending event, and a newer event replaces an unread one.
type broadcaster struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan entity.VisitEvent
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subscribers: make(map[int]chan entity.VisitEvent)}
}

func (b *broadcaster) subscribe() (<-chan entity.VisitEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan entity.VisitEvent, 1)
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(sub)
			}
		})
	}
}

func (b *broadcaster) broadcast(event entity.VisitEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}

		// Keep a pending notification if the replacing event carries none
		replacement := event
		select {
		case stale := <-ch:
			if stale.Notify && !replacement.Notify && replacement.Total > stale.Previous {
				replacement.Notify = true
				replacement.Previous = stale.Previous
			}
		default:
		}
		ch <- replacement
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
