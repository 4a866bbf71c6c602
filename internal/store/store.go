// Package store runs the fact screen's reducer as a single serialized actor.
//
// One goroutine owns the state and applies every action in arrival order.
// Effects run on worker goroutines and post their result back through the
// same action queue, so a fetch completion is applied like any other action
// and never races a concurrent mutation.
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"numfacts/internal/facts"
	"numfacts/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned when dispatching to a store whose actor has stopped.
var ErrClosed = errors.New("store: closed")

// ErrRunning is returned when Run is called on a store that already ran.
var ErrRunning = errors.New("store: already running")

const defaultQueueSize = 16

// Store owns one facts.State. Reads are safe from any goroutine; writes
// happen only on the actor goroutine started by Run.
type Store struct {
	reducer *facts.Reducer
	actions chan facts.Action
	done    chan struct{}
	started atomic.Bool
	logger  *zap.Logger

	mu    sync.RWMutex
	state facts.State

	subsMu sync.Mutex
	subs   map[int]chan facts.State
	nextID int
}

// Option configures a Store.
type Option func(*Store)

// WithQueueSize sets the action queue capacity.
func WithQueueSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.actions = make(chan facts.Action, n)
		}
	}
}

// WithLogger overrides the store category logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store holding initial. Call Run to start the actor.
func New(reducer *facts.Reducer, initial facts.State, opts ...Option) *Store {
	s := &Store{
		reducer: reducer,
		actions: make(chan facts.Action, defaultQueueSize),
		done:    make(chan struct{}),
		logger:  logging.Get(logging.CategoryStore),
		state:   initial,
		subs:    make(map[int]chan facts.State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run applies actions until ctx is cancelled, then waits for in-flight
// effects (which observe the cancelled context) and closes subscriptions.
func (s *Store) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrRunning
	}
	s.logger.Debug("store actor started")

	var effects errgroup.Group
	defer func() {
		_ = effects.Wait()
		close(s.done)
		s.closeSubscribers()
		s.logger.Debug("store actor stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case a := <-s.actions:
			s.apply(ctx, &effects, a)
		}
	}
}

func (s *Store) apply(ctx context.Context, effects *errgroup.Group, a facts.Action) {
	s.mu.RLock()
	prev := s.state
	s.mu.RUnlock()

	next, eff := s.reducer.Reduce(prev, a)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("applied action",
		zap.String("action", facts.Name(a)),
		zap.Stringer("phase", next.Phase()),
	)
	s.publish(next)

	if eff == nil {
		return
	}
	effects.Go(func() error {
		result := eff(ctx)
		select {
		case s.actions <- result:
		case <-ctx.Done():
			s.logger.Debug("dropping effect result after shutdown",
				zap.String("action", facts.Name(result)),
			)
		}
		return nil
	})
}

// Dispatch queues a for the actor. It blocks while the queue is full.
func (s *Store) Dispatch(ctx context.Context, a facts.Action) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.actions <- a:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() facts.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Done is closed once the actor has stopped.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Subscribe returns a channel that receives each new state. A slow reader
// only sees the latest state; the actor never blocks on subscribers. The
// channel is closed when the actor stops or cancel is called.
func (s *Store) Subscribe() (<-chan facts.State, func()) {
	ch := make(chan facts.State, 1)

	s.subsMu.Lock()
	select {
	case <-s.done:
		s.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	default:
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

func (s *Store) publish(st facts.State) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- st:
		default:
			// Replace the unread state with the newer one.
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

func (s *Store) closeSubscribers() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// WaitFor blocks until the state satisfies pred and returns that state.
func (s *Store) WaitFor(ctx context.Context, pred func(facts.State) bool) (facts.State, error) {
	updates, cancel := s.Subscribe()
	defer cancel()

	if st := s.State(); pred(st) {
		return st, nil
	}
	for {
		select {
		case st, ok := <-updates:
			if !ok {
				return s.State(), ErrClosed
			}
			if pred(st) {
				return st, nil
			}
		case <-ctx.Done():
			return s.State(), ctx.Err()
		}
	}
}
