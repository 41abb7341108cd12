package refstore

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/vango-dev/refstore/pkg/vango"
)

// Subscriber is notified after every Set. Identity is its ID: subscribing
// the same ID twice keeps a single registration.
type Subscriber interface {
	ID() uint64
	Notify()
}

type funcSubscriber struct {
	id uint64
	fn func()
}

func (s *funcSubscriber) ID() uint64 { return s.id }
func (s *funcSubscriber) Notify()    { s.fn() }

// NewSubscriber wraps fn in a Subscriber with a fresh identity.
func NewSubscriber(fn func()) Subscriber {
	return &funcSubscriber{id: vango.NextID(), fn: fn}
}

// Observer receives one call per Set, before subscribers are notified.
type Observer interface {
	StoreSet(store string, keys []string, subscribers int)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	name     string
	logger   *slog.Logger
	observer Observer
}

// WithName labels the store in logs and observer calls.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger logs every Set at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver reports every Set to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Store holds one state value of struct type S and its subscribers.
// It is safe for concurrent use; locks are never held while subscribers run,
// so subscribers may call Get and Set.
type Store[S any] struct {
	mu    sync.RWMutex
	state S
	subs  map[uint64]Subscriber

	name     string
	logger   *slog.Logger
	observer Observer
}

// New creates a store holding initial. It panics with E202 if S is not a
// struct type.
func New[S any](initial S, opts ...Option) *Store[S] {
	if err := checkStateType[S](); err != nil {
		panic(err)
	}

	o := options{name: reflect.TypeOf((*S)(nil)).Elem().Name()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[S]{
		state:    initial,
		subs:     make(map[uint64]Subscriber),
		name:     o.name,
		logger:   o.logger,
		observer: o.observer,
	}
}

// Name returns the store label used in logs.
func (s *Store[S]) Name() string {
	return s.name
}

// Get returns the current state. S is returned by value; changes to the
// copy do not reach the store.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set shallow-merges patch into the current state and then notifies every
// subscriber exactly once, in no particular order, before returning. An empty
// patch still notifies.
//
// Unknown keys and values that cannot be assigned to their field are
// programmer errors: Set panics with E203 or E204 and the state is left
// unchanged.
func (s *Store[S]) Set(patch Partial) {
	s.mu.Lock()
	merged, err := Merge(s.state, patch)
	if err != nil {
		s.mu.Unlock()
		panic(err)
	}
	s.state = merged
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	if s.logger != nil || s.observer != nil {
		keys := patch.Keys()
		if s.logger != nil {
			s.logger.Debug("store set", "store", s.name, "keys", keys, "subscribers", len(subs))
		}
		if s.observer != nil {
			s.observer.StoreSet(s.name, keys, len(subs))
		}
	}

	for _, sub := range subs {
		sub.Notify()
	}
}

// Subscribe registers sub and returns a function removing that
// registration. The returned function is safe to call more than once.
func (s *Store[S]) Subscribe(sub Subscriber) (unsubscribe func()) {
	id := sub.ID()

	s.mu.Lock()
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SubscribeFunc subscribes fn under a fresh identity.
func (s *Store[S]) SubscribeFunc(fn func()) (unsubscribe func()) {
	return s.Subscribe(NewSubscriber(fn))
}

// Len returns the number of registered subscribers.
func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// clearSubscribers drops every registration. Called when the owning
// Provider is disposed.
func (s *Store[S]) clearSubscribers() {
	s.mu.Lock()
	clear(s.subs)
	s.mu.Unlock()
}

// Keys returns the patch keys in sorted order.
func (p Partial) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
