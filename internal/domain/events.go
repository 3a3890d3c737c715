package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventKeyPressed      EventType = "KeyPressed"
	EventClicked         EventType = "Clicked"
	EventSearchCompleted EventType = "SearchCompleted"
	EventCorpusLoaded    EventType = "CorpusLoaded"
	EventCorpusFailed    EventType = "CorpusFailed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Key identifies a navigation key observed at document level
type Key string

const (
	KeyDown Key = "down"
	KeyUp   Key = "up"
)

// KeyPressedEvent is emitted by the host for every navigation key press
type KeyPressedEvent struct {
	Key     Key
	FocusID string // id of the widget that currently owns keyboard focus
}

func (e KeyPressedEvent) Type() EventType { return EventKeyPressed }

// ClickedEvent is emitted by the host for every mouse press
type ClickedEvent struct {
	Target string // id of the widget under the pointer, "" when outside every widget
	X, Y   int
}

func (e ClickedEvent) Type() EventType { return EventClicked }

// SearchCompletedEvent is emitted when a widget finishes a search
type SearchCompletedEvent struct {
	WidgetID string
	Query    string
	Shown    int
	Total    int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// CorpusLoadedEvent is emitted once the shared corpus is available
type CorpusLoadedEvent struct {
	Pages int
}

func (e CorpusLoadedEvent) Type() EventType { return EventCorpusLoaded }

// CorpusFailedEvent is emitted when loading the corpus fails
type CorpusFailedEvent struct {
	Err error
}

func (e CorpusFailedEvent) Type() EventType { return EventCorpusFailed }
