// Package facts is the root of the fact screen's state: it embeds the text
// field and picker slices, owns the fetch lifecycle fields, and reduces the
// screen's actions.
package facts

import (
	"numfacts/internal/picker"
	"numfacts/internal/textfield"
)

// DefaultLabel is the text field label the screen starts with.
const DefaultLabel = "Please enter a number"

// State is the complete screen state.
// Fact and Error may both be set: a stale fact stays visible next to a new error.
type State struct {
	TextInput textfield.State
	Picker    picker.State
	Fact      *string
	IsLoading bool
	Error     *string
}

// NewState returns the start-of-process state.
func NewState(label string) State {
	return State{
		TextInput: textfield.New(label),
		Picker:    picker.New(),
	}
}

// Phase is the conceptual state derived from IsLoading.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
)

func (p Phase) String() string {
	if p == PhaseLoading {
		return "loading"
	}
	return "idle"
}

// Phase reports whether a fetch is in flight.
func (s State) Phase() Phase {
	if s.IsLoading {
		return PhaseLoading
	}
	return PhaseIdle
}

// HasFact reports whether a fact has been fetched.
func (s State) HasFact() bool { return s.Fact != nil }

// HasError reports whether the last fetch failed.
func (s State) HasError() bool { return s.Error != nil }

// FactText returns the fact or "".
func (s State) FactText() string {
	if s.Fact == nil {
		return ""
	}
	return *s.Fact
}

// ErrorText returns the error message or "".
func (s State) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}
