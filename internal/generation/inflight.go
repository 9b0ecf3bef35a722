package generation

import (
	"fmt"
	"sync"
)

// InFlight tracks which items are currently generating. A second request for an item that is
// still outstanding is rejected rather than queued or raced.
type InFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewInFlight returns an empty tracker
func NewInFlight() *InFlight {
	return &InFlight{active: make(map[string]struct{})}
}

// Begin marks key as generating. The returned release function clears the mark and is safe to
// call more than once; callers defer it so the flag is cleared on every path.
func (f *InFlight) Begin(key string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.active[key]; busy {
		return nil, fmt.Errorf("%w: %s", ErrInProgress, key)
	}
	f.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.active, key)
			f.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key is generating
func (f *InFlight) Busy(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.active[key]
	return busy
}

// Do runs fn while holding the mark for key.
func (f *InFlight) Do(key string, fn func() error) error {
	release, err := f.Begin(key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}
