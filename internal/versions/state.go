package versions

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// State is the application state: the version collection and the active selection.
type State struct {
	Versions []types.CVVersion `json:"versions"`
	ActiveID string            `json:"activeId"`
}

// Active returns the active version.
func (s State) Active() (types.CVVersion, bool) {
	return Find(s.Versions, s.ActiveID)
}

// Event is published to subscribers after every accepted mutation.
type Event struct {
	Cause string `json:"cause"`
	State State  `json:"state"`
}

// Store owns the application state. Mutations are pure functions of the current state, applied
// one at a time; after each accepted mutation the collection is persisted and subscribers are
// notified. Persistence failures are logged and never fail the mutation.
type Store struct {
	mu      sync.Mutex
	state   State
	storage Storage
	now     func() time.Time
	saved   string // active id last written under ActiveKey

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for LastModified stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore loads the persisted collection, synthesizes a default version if none exists, restores
// the persisted selection (falling back to the first version), and persists the result. This also
// rewrites a legacy snapshot in the current envelope format.
func NewStore(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		now:     time.Now,
		subs:    make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.saved = LoadActive(ctx, storage)
	s.state.Versions, s.state.ActiveID = EnsureActive(Load(ctx, storage), s.saved, s.now())
	s.persist(ctx)
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Versions: slices.Clone(s.state.Versions), ActiveID: s.state.ActiveID}
}

// Active returns the active version.
func (s *Store) Active() types.CVVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, _ := s.state.Active()
	return v
}

// Dispatch applies fn to the current state. A returned error rejects the mutation and leaves the
// state untouched. The result is normalized with EnsureActive before it is accepted.
func (s *Store) Dispatch(ctx context.Context, cause string, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(State{Versions: slices.Clone(s.state.Versions), ActiveID: s.state.ActiveID})
	if err != nil {
		return s.state, err
	}
	next.Versions, next.ActiveID = EnsureActive(next.Versions, next.ActiveID, s.now())
	s.state = next

	s.persist(ctx)
	s.publish(Event{Cause: cause, State: State{Versions: slices.Clone(next.Versions), ActiveID: next.ActiveID}})
	return next, nil
}

// Apply merges an asynchronous result into whatever state is current when it resolves.
func (s *Store) Apply(ctx context.Context, cause string, fn func(State) State) State {
	next, _ := s.Dispatch(ctx, cause, func(st State) (State, error) { return fn(st), nil })
	return next
}

// Select makes the version with id active.
func (s *Store) Select(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, "select", func(st State) (State, error) {
		if _, ok := Find(st.Versions, id); !ok {
			return st, fmt.Errorf("select %s: %w", id, ErrVersionNotFound)
		}
		st.ActiveID = id
		return st, nil
	})
	return err
}

// UpdateActive merges patch into the active version.
func (s *Store) UpdateActive(ctx context.Context, cause string, patch Patch) types.CVVersion {
	next := s.Apply(ctx, cause, func(st State) State {
		st.Versions = Update(st.Versions, st.ActiveID, patch, s.now())
		return st
	})
	v, _ := next.Active()
	return v
}

// EditData runs fn on a private copy of the active version's data and stores the result.
func (s *Store) EditData(ctx context.Context, cause string, fn func(types.CVData) (types.CVData, error)) (types.CVVersion, error) {
	next, err := s.Dispatch(ctx, cause, func(st State) (State, error) {
		v, ok := st.Active()
		if !ok {
			return st, ErrVersionNotFound
		}
		data, err := fn(v.Data.Clone())
		if err != nil {
			return st, err
		}
		st.Versions = Update(st.Versions, st.ActiveID, Patch{Data: &data}, s.now())
		return st, nil
	})
	if err != nil {
		return types.CVVersion{}, err
	}
	v, _ := next.Active()
	return v, nil
}

// Create adds an empty version and makes it active.
func (s *Store) Create(ctx context.Context, name string) types.CVVersion {
	var created types.CVVersion
	s.Apply(ctx, "create", func(st State) State {
		st.Versions, created = Create(st.Versions, name, s.now())
		st.ActiveID = created.ID
		return st
	})
	return created
}

// Duplicate copies sourceID into a new version and makes the copy active.
func (s *Store) Duplicate(ctx context.Context, sourceID, name string) (types.CVVersion, error) {
	var dup types.CVVersion
	_, err := s.Dispatch(ctx, "duplicate", func(st State) (State, error) {
		var err error
		st.Versions, dup, err = Duplicate(st.Versions, sourceID, name, s.now())
		if err != nil {
			return st, err
		}
		st.ActiveID = dup.ID
		return st, nil
	})
	return dup, err
}

// Delete removes a version. Deleting the active version selects the first remaining one.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.Dispatch(ctx, "delete", func(st State) (State, error) {
		var err error
		st.Versions, err = Delete(st.Versions, id)
		return st, err
	})
	return err
}

// SetHidden shows or hides a section on the active version.
func (s *Store) SetHidden(ctx context.Context, sectionID string, hidden bool) (types.CVVersion, error) {
	next, err := s.Dispatch(ctx, "visibility", func(st State) (State, error) {
		var err error
		st.Versions, err = SetHidden(st.Versions, st.ActiveID, sectionID, hidden, s.now())
		return st, err
	})
	v, _ := next.Active()
	return v, err
}

// MoveSection reorders a section on the active version.
func (s *Store) MoveSection(ctx context.Context, sectionID string, delta int) (types.CVVersion, error) {
	next, err := s.Dispatch(ctx, "reorder", func(st State) (State, error) {
		var err error
		st.Versions, err = MoveSection(st.Versions, st.ActiveID, sectionID, delta, s.now())
		return st, err
	})
	v, _ := next.Active()
	return v, err
}

// Subscribe registers an observer. The returned function unregisters it and closes the channel.
// Slow subscribers miss events rather than blocking mutations.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 16)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("versions: dropping %q event for slow subscriber", ev.Cause)
		}
	}
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) {
	if err := Persist(ctx, s.storage, s.state.Versions); err != nil {
		log.Printf("versions: %v", err)
	}
	if s.state.ActiveID == s.saved {
		return
	}
	if err := PersistActive(ctx, s.storage, s.state.ActiveID); err != nil {
		log.Printf("versions: %v", err)
		return
	}
	s.saved = s.state.ActiveID
}
