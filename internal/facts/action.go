package facts

import (
	"numfacts/internal/picker"
	"numfacts/internal/textfield"
)

// Action is anything the root reducer accepts: one variant per child plus
// the fetch lifecycle.
type Action interface {
	rootAction()
}

// TextFieldAction forwards an action to the text field.
type TextFieldAction struct {
	Action textfield.Action
}

// PickerAction forwards an action to the category picker.
type PickerAction struct {
	Action picker.Action
}

// FetchRequested asks for a fact about the current number and category.
type FetchRequested struct{}

// FetchSucceeded delivers the fetched fact.
type FetchSucceeded struct {
	Fact string
}

// FetchFailed delivers a fetch failure's message.
type FetchFailed struct {
	Message string
}

func (TextFieldAction) rootAction() {}
func (PickerAction) rootAction()    {}
func (FetchRequested) rootAction()  {}
func (FetchSucceeded) rootAction()  {}
func (FetchFailed) rootAction()     {}

// SetNumber is shorthand for a forwarded textfield.SetValue.
func SetNumber(v string) Action {
	return TextFieldAction{Action: textfield.SetValue{Value: v}}
}

// SelectCategory is shorthand for a forwarded picker.SelectCategory.
func SelectCategory(c string) Action {
	return PickerAction{Action: picker.SelectCategory{Category: c}}
}

// Name returns a short label for logs.
func Name(a Action) string {
	switch a.(type) {
	case TextFieldAction:
		return "textField"
	case PickerAction:
		return "picker"
	case FetchRequested:
		return "fetchRequested"
	case FetchSucceeded:
		return "fetchSucceeded"
	case FetchFailed:
		return "fetchFailed"
	default:
		return "unknown"
	}
}
