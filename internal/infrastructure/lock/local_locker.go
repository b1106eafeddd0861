package lock

import (
	"context"
	"sync"
)

type keyedSlot struct {
	ch   chan struct{}
	refs int
}

// LocalLocker serializes work per key inside a single process.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*keyedSlot
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: map[string]*keyedSlot{}}
}

// Lock blocks until key is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &keyedSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, slot)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.release(key, slot)
		})
	}, nil
}

func (l *LocalLocker) release(key string, slot *keyedSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
