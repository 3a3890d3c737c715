package focus

// Direction represents a navigation key
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// State names which element owns keyboard focus
type State int

const (
	InputFocused State = iota
	ResultFocused
)

func (s State) String() string {
	switch s {
	case InputFocused:
		return "INPUT_FOCUSED"
	case ResultFocused:
		return "RESULT_FOCUSED"
	default:
		return "UNKNOWN"
	}
}

// EffectKind tells the rendering layer what to do after a transition
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectFocusInput
	EffectFocusResult
)

// Effect is an instruction for the rendering layer
type Effect struct {
	Kind  EffectKind
	Index int // result index for EffectFocusResult
}
