package store

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Store is the single state container. Dispatch is the only way to change it.
type Store struct {
	dispatchMu sync.Mutex // serializes reduce+notify

	mu     sync.RWMutex // guards fields below
	state  State
	subs   map[int]func(State)
	order  []int
	nextID int

	log *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger logs every dispatched action at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New constructs a store holding initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial,
		subs:  map[int]func(State){},
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and notifies subscribers with the resulting snapshot, in
// subscription order. Subscribers run on the dispatching goroutine and must not call
// Dispatch themselves.
func (s *Store) Dispatch(a Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	subs := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	s.log.Debug("dispatch", zap.String("action", a.Type()))

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn for every future dispatch and returns a func that removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Select reads one projection of the current state.
func Select[T any](s *Store, sel func(State) T) T {
	return sel(s.State())
}

// Watch calls fn with the projection selected by sel whenever it changes value.
// fn is not called for the current value.
func Watch[T any](s *Store, sel func(State) T, fn func(T)) (unsubscribe func()) {
	var mu sync.Mutex
	last := sel(s.State())
	return s.Subscribe(func(st State) {
		v := sel(st)
		mu.Lock()
		changed := !reflect.DeepEqual(v, last)
		if changed {
			last = v
		}
		mu.Unlock()
		if changed {
			fn(v)
		}
	})
}
