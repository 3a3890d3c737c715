// Package focus models which element of a search widget has keyboard focus.
//
// The machine is toolkit independent: transitions return an Effect and the
// caller moves the visual focus.
package focus

// Machine tracks the focused element.
// Index -1 means the text input has focus; 0..count-1 is a result.
type Machine struct {
	index int
	count int
}

// NewMachine returns a machine with no results and the input focused
func NewMachine() *Machine {
	return &Machine{index: -1}
}

// Reset installs a fresh result list of count entries with nothing focused
func (m *Machine) Reset(count int) {
	if count < 0 {
		count = 0
	}
	m.count = count
	m.index = -1
}

// Clear drops the result list
func (m *Machine) Clear() {
	m.Reset(0)
}

// Move applies a navigation key and returns the focus effect to perform
func (m *Machine) Move(dir Direction) Effect {
	switch dir {
	case DirectionDown:
		if m.index >= m.count-1 {
			return Effect{Kind: EffectNone}
		}
		m.index++
		return Effect{Kind: EffectFocusResult, Index: m.index}

	case DirectionUp:
		if m.index < 0 {
			return Effect{Kind: EffectNone}
		}
		m.index--
		if m.index < 0 {
			return Effect{Kind: EffectFocusInput}
		}
		return Effect{Kind: EffectFocusResult, Index: m.index}
	}
	return Effect{Kind: EffectNone}
}

// FocusInput returns focus to the input without touching the results
func (m *Machine) FocusInput() {
	m.index = -1
}

// Index returns the focused index, -1 for the input
func (m *Machine) Index() int {
	return m.index
}

// Count returns the number of results being navigated
func (m *Machine) Count() int {
	return m.count
}

// State returns the current state
func (m *Machine) State() State {
	if m.index < 0 {
		return InputFocused
	}
	return ResultFocused
}
