// Package picker holds the state and reducer for the category selector.
package picker

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed category names understood by the numbers service.
const (
	Trivia = "trivia"
	Math   = "math"
	Year   = "year"
)

var defaultOptions = []string{Trivia, Math, Year}

// DefaultOptions returns a copy of the fixed category list, in display order.
func DefaultOptions() []string {
	return slices.Clone(defaultOptions)
}

// State is the category picker slice of the screen.
// Options is fixed at construction and never mutated afterwards.
type State struct {
	Selected string
	Options  []string
}

// New returns a picker over the fixed categories with "trivia" selected.
func New() State {
	return State{
		Selected: Trivia,
		Options:  DefaultOptions(),
	}
}

// Action is an intended change to the picker.
type Action interface {
	pickerAction()
}

// SelectCategory changes the selected category.
// The category is expected to be one of the options; this is not enforced.
type SelectCategory struct {
	Category string
}

func (SelectCategory) pickerAction() {}

// Reduce applies a to s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SelectCategory:
		s.Selected = a.Category
	}
	return s
}

// Contains reports whether c is one of the picker's options.
func (s State) Contains(c string) bool {
	return slices.Contains(s.Options, c)
}

// Valid reports whether the selection is one of the options.
func (s State) Valid() bool {
	return s.Contains(s.Selected)
}

// Next returns the option after the selected one, wrapping around.
// An unknown selection yields the first option.
func (s State) Next() string {
	return s.step(1)
}

// Prev returns the option before the selected one, wrapping around.
func (s State) Prev() string {
	return s.step(-1)
}

func (s State) step(delta int) string {
	if len(s.Options) == 0 {
		return s.Selected
	}
	i := slices.Index(s.Options, s.Selected)
	if i < 0 {
		return s.Options[0]
	}
	n := len(s.Options)
	return s.Options[((i+delta)%n+n)%n]
}

// IsDefault reports whether c is one of the fixed categories.
func IsDefault(c string) bool {
	return slices.Contains(defaultOptions, c)
}

// Title capitalizes a category for display ("math" -> "Math").
func Title(c string) string {
	r, size := utf8.DecodeRuneInString(c)
	if r == utf8.RuneError {
		return c
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(c[size:])
}
