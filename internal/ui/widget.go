package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsearch/internal/corpus"
	"docsearch/internal/debounce"
	"docsearch/internal/domain"
	"docsearch/internal/eventbus"
	"docsearch/internal/focus"
	"docsearch/internal/render"
	"docsearch/internal/search"
	"docsearch/internal/ui/views"
)

// WidgetOptions configures a Widget
type WidgetOptions struct {
	Small       bool          // compact layout
	QuietPeriod time.Duration // debounce delay, debounce.DefaultDelay when zero
	Logger      *slog.Logger
	Context     context.Context // bounds corpus waits, context.Background when nil
}

// Widget is one search box with its result list.
//
// A widget is driven from the host's Update loop. It listens for
// document-level clicks once attached and for navigation keys once it has
// been focused for the first time; Detach releases both listeners.
type Widget struct {
	id       string
	small    bool
	provider corpus.Provider
	logger   *slog.Logger
	ctx      context.Context

	input     textinput.Model
	debouncer *debounce.Debouncer
	focus     *focus.Machine
	list      render.List

	// seq identifies the current session; completions of older ones are dropped
	seq       int
	searching bool

	bus          eventbus.EventBus
	releaseClick func()
	releaseKeys  func()

	pending []tea.Cmd
}

// NewWidget creates a widget reading pages from provider
func NewWidget(id string, provider corpus.Provider, opts WidgetOptions) *Widget {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Search features"
	ti.Prompt = ""
	ti.CharLimit = 256

	return &Widget{
		id:        id,
		small:     opts.Small,
		provider:  provider,
		logger:    logger.With("widget", id),
		ctx:       ctx,
		input:     ti,
		debouncer: debounce.New(id, opts.QuietPeriod),
		focus:     focus.NewMachine(),
	}
}

// ID returns the widget id used as click target
func (w *Widget) ID() string {
	return w.id
}

// Small reports whether the widget uses the compact layout
func (w *Widget) Small() bool {
	return w.small
}

// Attach starts observing document-level clicks on bus
func (w *Widget) Attach(bus eventbus.EventBus) {
	if w.bus != nil {
		w.Detach()
	}
	w.bus = bus
	w.releaseClick = bus.Subscribe(eventbus.EventClicked, w.onClick)
}

// Detach releases every listener and cancels pending work
func (w *Widget) Detach() {
	if w.releaseClick != nil {
		w.releaseClick()
		w.releaseClick = nil
	}
	if w.releaseKeys != nil {
		w.releaseKeys()
		w.releaseKeys = nil
	}
	w.debouncer.Cancel()
	w.bus = nil
}

// Active reports whether navigation keys are being observed
func (w *Widget) Active() bool {
	return w.releaseKeys != nil
}

// activate subscribes the key listener; it stays until Detach
func (w *Widget) activate() {
	if w.releaseKeys != nil || w.bus == nil {
		return
	}
	w.releaseKeys = w.bus.Subscribe(eventbus.EventKeyPressed, w.onKey)
	w.logger.Debug("widget activated")
}

// Focus gives the text input keyboard focus
func (w *Widget) Focus() tea.Cmd {
	w.focus.FocusInput()
	w.activate()
	return w.input.Focus()
}

// Blur removes keyboard focus from the widget
func (w *Widget) Blur() {
	w.input.Blur()
	w.focus.FocusInput()
}

// Focused reports whether the text input has focus
func (w *Widget) Focused() bool {
	return w.input.Focused()
}

// HandleKey processes a key routed to this widget by the host.
// Navigation keys do not come through here; they arrive as bus events.
func (w *Widget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if w.focus.State() == focus.ResultFocused {
			return w.openSelected()
		}
		return w.Submit()
	case tea.KeyEsc:
		w.debouncer.Cancel()
		w.input.SetValue("")
		w.clearSession()
		return w.Focus()
	}

	// Typing only reaches the input while it holds focus
	if !w.input.Focused() {
		return nil
	}

	before := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, w.debouncer.Input(w.input.Value()))
}

// Submit runs the search for the current input now, cancelling any pending
// debounced run. A blank input does nothing.
func (w *Widget) Submit() tea.Cmd {
	w.debouncer.Cancel()

	query := strings.TrimSpace(w.input.Value())
	if query == "" {
		return nil
	}

	// A focused result means the widget owns keyboard focus; the new
	// session starts on the input, so the input takes focus back
	refocus := w.focus.State() == focus.ResultFocused

	w.clearSession()
	w.searching = true
	cmd := w.searchCmd(w.seq, query)
	if refocus {
		return tea.Batch(cmd, w.input.Focus())
	}
	return cmd
}

// SetValue replaces the input text as if typed, re-arming the debounce
func (w *Widget) SetValue(value string) tea.Cmd {
	w.input.SetValue(value)
	return w.debouncer.Input(value)
}

// Value returns the raw input text
func (w *Widget) Value() string {
	return w.input.Value()
}

// Update handles messages addressed to the widget
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounce.Msg:
		if w.debouncer.Fire(msg) {
			return w.Submit()
		}
		return nil

	case searchDoneMsg:
		if msg.widgetID != w.id {
			return nil
		}
		w.finishSearch(msg)
		return nil
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

func (w *Widget) searchCmd(seq int, query string) tea.Cmd {
	id, provider, ctx := w.id, w.provider, w.ctx
	return func() tea.Msg {
		begin := time.Now()
		pages, err := provider.Pages(ctx)
		if err != nil {
			return searchDoneMsg{widgetID: id, seq: seq, query: query, err: err}
		}
		return searchDoneMsg{
			widgetID: id,
			seq:      seq,
			query:    query,
			outcome:  search.Search(query, pages),
			took:     time.Since(begin),
		}
	}
}

func (w *Widget) finishSearch(msg searchDoneMsg) {
	if msg.seq != w.seq {
		w.logger.Debug("dropping stale search", "query", msg.query)
		return
	}
	w.searching = false

	if msg.err != nil {
		w.logger.Error("search failed", "query", msg.query, "error", msg.err)
		return
	}

	w.list = render.Build(msg.outcome)
	w.focus.Reset(len(w.list.Entries))
	w.logger.Debug("search completed",
		"query", msg.outcome.Query,
		"shown", len(w.list.Entries),
		"total", msg.outcome.Total,
		"duration", msg.took,
	)

	if w.bus != nil {
		w.bus.Publish(eventbus.SearchCompletedEvent{
			WidgetID: w.id,
			Query:    msg.outcome.Query,
			Shown:    len(w.list.Entries),
			Total:    msg.outcome.Total,
		})
	}
}

// clearSession drops results, message and focus and invalidates in-flight searches
func (w *Widget) clearSession() {
	w.seq++
	w.searching = false
	w.list = render.List{}
	w.focus.Clear()
}

func (w *Widget) onClick(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.ClickedEvent)
	if !ok || ev.Target == w.id {
		return
	}
	w.clearSession()
}

func (w *Widget) onKey(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.KeyPressedEvent)
	if !ok || ev.FocusID != w.id {
		return
	}

	var dir focus.Direction
	switch ev.Key {
	case domain.KeyDown:
		dir = focus.DirectionDown
	case domain.KeyUp:
		dir = focus.DirectionUp
	default:
		return
	}

	switch eff := w.focus.Move(dir); eff.Kind {
	case focus.EffectFocusInput:
		w.pending = append(w.pending, w.input.Focus())
	case focus.EffectFocusResult:
		w.input.Blur()
	}
}

// TakeCmds returns commands queued by bus handlers
func (w *Widget) TakeCmds() tea.Cmd {
	if len(w.pending) == 0 {
		return nil
	}
	cmds := w.pending
	w.pending = nil
	return tea.Batch(cmds...)
}

// Selected returns the result holding keyboard focus
func (w *Widget) Selected() (render.Entry, bool) {
	i := w.focus.Index()
	if i < 0 || i >= len(w.list.Entries) {
		return render.Entry{}, false
	}
	return w.list.Entries[i], true
}

func (w *Widget) openSelected() tea.Cmd {
	e, ok := w.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return openPageMsg{entry: e}
	}
}

// List returns the current display list
func (w *Widget) List() render.List {
	return w.list
}

// FocusIndex returns -1 when the input has focus, otherwise the focused result
func (w *Widget) FocusIndex() int {
	return w.focus.Index()
}

// FocusState returns the focus machine state
func (w *Widget) FocusState() focus.State {
	return w.focus.State()
}

// Searching reports whether a search is awaiting its result
func (w *Widget) Searching() bool {
	return w.searching
}

// View renders the widget at the given outer width
func (w *Widget) View(styles *views.Styles, tmpl render.Template, width int, hasFocus bool) string {
	box := styles.Widget
	switch {
	case w.small:
		box = styles.WidgetSmall
	case hasFocus:
		box = styles.WidgetFocused
	}

	inner := width - box.GetHorizontalFrameSize()
	if w.small && inner > 40 {
		inner = 40
	}
	if inner < 10 {
		inner = 10
	}
	w.input.Width = inner - 3

	var b strings.Builder
	b.WriteString(styles.Prompt.Render("/ "))
	b.WriteString(w.input.View())

	if w.searching {
		b.WriteString("\n")
		b.WriteString(styles.Searching.Render("searching…"))
	}

	for i, e := range w.list.Entries {
		b.WriteString("\n")
		b.WriteString(tmpl.Render(e, i == w.focus.Index()))
	}
	if w.list.Total > len(w.list.Entries) && len(w.list.Entries) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.More.Render(fmt.Sprintf("showing first %d results", len(w.list.Entries))))
	}
	if w.list.MessageVisible {
		b.WriteString("\n")
		b.WriteString(styles.Message.Render(w.list.Message))
	}

	return box.Width(inner + box.GetHorizontalPadding()).Render(lipgloss.NewStyle().MaxWidth(inner).Render(b.String()))
}
