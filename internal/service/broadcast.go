package service

import (
	"sync"

	"github.com/Razgrits/Suno-Battler/internal/game"
)

// TurnEvent is pushed to subscribers after every resolved turn.
type TurnEvent struct {
	Result game.TurnResult `json:"result"`
	Battle Battle          `json:"battle"`
}

const subscriberBuffer = 64

// broadcaster fans turn events out to the watchers of one battle. It has its
// own lock so watchers can unsubscribe without waiting on the battle.
type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan TurnEvent
}

func (b *broadcaster) register() (int, chan TurnEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]chan TurnEvent)
	}
	b.next++
	ch := make(chan TurnEvent, subscriberBuffer)
	b.subs[b.next] = ch
	return b.next, ch
}

// unregister closes the subscriber's channel; calling it twice is harmless.
func (b *broadcaster) unregister(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		close(ch)
		delete(b.subs, id)
	}
}

// publish never blocks; a watcher that falls behind misses events but can
// always resync from the snapshot carried by the next one.
func (b *broadcaster) publish(ev TurnEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscribe returns the current snapshot and a channel of every later turn.
// The channel is closed when the battle finishes, is discarded or expires,
// or when cancel is called. Subscribing to a finished battle yields an
// already-closed channel.
func (m *Manager) Subscribe(id string) (Battle, <-chan TurnEvent, func(), error) {
	s, err := m.lookup(id)
	if err != nil {
		return Battle{}, nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ch := s.events.register()
	cancel := func() { s.events.unregister(sub) }
	if !s.state.InProgress() {
		cancel()
	}
	return s.view(), ch, cancel, nil
}
