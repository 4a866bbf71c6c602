package facts

import (
	"context"
	"errors"

	"numfacts/internal/factservice"
	"numfacts/internal/logging"
	"numfacts/internal/picker"
	"numfacts/internal/textfield"

	"go.uber.org/zap"
)

// Effect is asynchronous work started by a transition. Its result is
// delivered back to the reducer as an ordinary action.
type Effect func(ctx context.Context) Action

// Reducer owns the screen's transition rules. The fact service is injected.
type Reducer struct {
	service   factservice.Service
	logger    *zap.Logger
	unguarded bool
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithLogger overrides the reducer category logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reducer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithUnguardedFetch lets FetchRequested start a second fetch while one is
// already in flight. By default the request is ignored.
func WithUnguardedFetch() Option {
	return func(r *Reducer) {
		r.unguarded = true
	}
}

// NewReducer creates a reducer that fetches through service.
func NewReducer(service factservice.Service, opts ...Option) *Reducer {
	r := &Reducer{
		service: service,
		logger:  logging.Get(logging.CategoryReducer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce applies a to s and returns the next state plus an optional effect.
// Child actions only change their own slice.
func (r *Reducer) Reduce(s State, a Action) (State, Effect) {
	switch a := a.(type) {
	case TextFieldAction:
		s.TextInput = textfield.Reduce(s.TextInput, a.Action)
		return s, nil

	case PickerAction:
		s.Picker = picker.Reduce(s.Picker, a.Action)
		return s, nil

	case FetchRequested:
		if s.IsLoading && !r.unguarded {
			r.logger.Debug("ignoring fetch request while loading")
			return s, nil
		}
		s.IsLoading = true
		number, category := s.TextInput.Value, s.Picker.Selected
		r.logger.Debug("fetch requested",
			zap.String("number", number),
			zap.String("category", category),
		)
		return s, r.fetch(number, category)

	case FetchSucceeded:
		fact := a.Fact
		s.Fact = &fact
		s.IsLoading = false
		return s, nil

	case FetchFailed:
		msg := a.Message
		s.Error = &msg
		s.IsLoading = false
		r.logger.Info("fetch failed", zap.String("message", msg))
		return s, nil
	}

	r.logger.Warn("unhandled action", zap.String("action", Name(a)))
	return s, nil
}

// fetch captures the request values so later edits don't change an
// in-flight request.
func (r *Reducer) fetch(number, category string) Effect {
	service := r.service
	return func(ctx context.Context) Action {
		if service == nil {
			return FetchFailed{Message: "fact service unavailable"}
		}
		fact, err := service.Fetch(ctx, number, category)
		if err != nil {
			return FetchFailed{Message: errorMessage(err)}
		}
		return FetchSucceeded{Fact: fact}
	}
}

func errorMessage(err error) string {
	var fe *factservice.FetchError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
