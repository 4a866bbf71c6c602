package factservice

import (
	"context"
	"sync"
)

// Call records one Fetch made against a Stub.
type Call struct {
	Number   string
	Category string
}

type outcome struct {
	fact string
	err  error
}

// Stub is a deterministic Service for tests. Responses are configured per
// (number, category) pair with a fallback default. A nil Default fails with
// "no stubbed response".
type Stub struct {
	mu        sync.Mutex
	responses map[Call]outcome
	fallback  *outcome
	calls     []Call

	// Block, when non-nil, holds every Fetch until it is closed or the
	// context is cancelled. It lets a test observe the loading state.
	Block chan struct{}
}

// NewStub creates an empty stub.
func NewStub() *Stub {
	return &Stub{responses: make(map[Call]outcome)}
}

// Succeed stubs a successful fact for (number, category).
func (s *Stub) Succeed(number, category, fact string) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[Call{number, category}] = outcome{fact: fact}
	return s
}

// Fail stubs a FetchError with message for (number, category).
func (s *Stub) Fail(number, category, message string) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[Call{number, category}] = outcome{err: NewFetchError(message)}
	return s
}

// SucceedAll makes every unmatched call succeed with fact.
func (s *Stub) SucceedAll(fact string) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = &outcome{fact: fact}
	return s
}

// FailAll makes every unmatched call fail with message.
func (s *Stub) FailAll(message string) *Stub {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = &outcome{err: NewFetchError(message)}
	return s
}

// Fetch implements Service.
func (s *Stub) Fetch(ctx context.Context, number, category string) (string, error) {
	call := Call{Number: number, Category: category}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	block := s.Block
	o, ok := s.responses[call]
	if !ok && s.fallback != nil {
		o, ok = *s.fallback, true
	}
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", &FetchError{Message: "The request was cancelled.", Err: ctx.Err()}
		}
	}

	if !ok {
		return "", NewFetchError("no stubbed response")
	}
	return o.fact, o.err
}

// Calls returns the calls made so far, in order.
func (s *Stub) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}
