// Package textfield holds the state and reducer for the number input field.
package textfield

// State is the text input slice of the screen.
// Value may be empty; no numeric validation happens here.
type State struct {
	Label string
	Value string
}

// New creates an empty field with the given label.
func New(label string) State {
	return State{Label: label}
}

// Action is an intended change to a text field.
type Action interface {
	textFieldAction()
}

// SetValue replaces the field's value.
type SetValue struct {
	Value string
}

func (SetValue) textFieldAction() {}

// Reduce applies a to s. It never fails and has no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetValue:
		s.Value = a.Value
	}
	return s
}
