package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsearch/internal/config"
	"docsearch/internal/corpus"
	"docsearch/internal/domain"
	"docsearch/internal/eventbus"
	"docsearch/internal/ui/views"
)

// Widget ids
const (
	HeaderWidgetID = "header"
	MainWidgetID   = "main"
)

// Options holds the Model dependencies
type Options struct {
	Config   *config.Config
	Provider corpus.Provider
	Bus      eventbus.EventBus
	Pager    Pager
	Logger   *slog.Logger
	Context  context.Context
}

// region is the vertical extent of a widget in the last rendered frame
type region struct {
	id         string
	top, lines int
}

// Model is the host screen. It plays the role of the document: it owns the
// event bus, publishes navigation keys and clicks on it, and routes typing
// to the focused widget.
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	provider corpus.Provider
	pager    Pager
	logger   *slog.Logger
	ctx      context.Context

	widgets []*Widget
	focused int // index into widgets, -1 when no widget has focus

	width   int
	height  int
	help    help.Model
	keys    keyMap
	styles  *views.Styles
	results *views.ResultTemplate
	helpDoc *HelpRenderer
	regions []region

	corpusPages int
	corpusErr   error
	corpusReady bool
}

// NewModel creates the host with its widgets attached to the bus
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.New(logger)
	}
	pager := opts.Pager
	if pager == nil {
		pager = OVPager{}
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	styles := views.NewStyles()
	m := &Model{
		bus:      bus,
		config:   cfg,
		provider: opts.Provider,
		pager:    pager,
		logger:   logger,
		ctx:      ctx,
		focused:  -1,
		help:     help.New(),
		keys:     newKeyMap(),
		styles:   styles,
		results:  views.NewResultTemplate(styles, !cfg.UISettings.Small),
		helpDoc:  NewHelpRenderer(),
	}

	widgetOpts := WidgetOptions{
		QuietPeriod: cfg.QuietPeriod(),
		Logger:      logger,
		Context:     ctx,
	}
	if cfg.UISettings.HeaderWidget {
		headerOpts := widgetOpts
		headerOpts.Small = true
		m.AddWidget(NewWidget(HeaderWidgetID, opts.Provider, headerOpts))
	}
	mainOpts := widgetOpts
	mainOpts.Small = cfg.UISettings.Small
	m.AddWidget(NewWidget(MainWidgetID, opts.Provider, mainOpts))

	bus.Subscribe(eventbus.EventCorpusFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.CorpusFailedEvent); ok {
			logger.Error("corpus unavailable, searches will return nothing", "error", ev.Err)
		}
	})

	return m
}

// AddWidget attaches a widget to the host
func (m *Model) AddWidget(w *Widget) {
	w.Attach(m.bus)
	m.widgets = append(m.widgets, w)
}

// RemoveWidget detaches and drops a widget
func (m *Model) RemoveWidget(id string) {
	for i, w := range m.widgets {
		if w.ID() != id {
			continue
		}
		w.Detach()
		m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
		switch {
		case m.focused == i:
			m.focused = -1
		case m.focused > i:
			m.focused--
		}
		return
	}
}

// Widget returns the widget with the given id
func (m *Model) Widget(id string) *Widget {
	for _, w := range m.widgets {
		if w.ID() == id {
			return w
		}
	}
	return nil
}

// FocusedWidget returns the widget holding keyboard focus, or nil
func (m *Model) FocusedWidget() *Widget {
	if m.focused < 0 || m.focused >= len(m.widgets) {
		return nil
	}
	return m.widgets[m.focused]
}

// Bus returns the host event bus
func (m *Model) Bus() eventbus.EventBus {
	return m.bus
}

// Init focuses the main widget and starts loading the corpus
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCorpus(), textinput.Blink}
	if cmd := m.focusWidget(len(m.widgets) - 1); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadCorpus() tea.Cmd {
	if m.provider == nil {
		return nil
	}
	provider, ctx := m.provider, m.ctx
	return func() tea.Msg {
		pages, err := provider.Pages(ctx)
		return corpusReadyMsg{pages: len(pages), err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		return m, m.handleClick(msg.X, msg.Y)

	case corpusReadyMsg:
		m.corpusReady = true
		m.corpusPages = msg.pages
		m.corpusErr = msg.err
		if msg.err != nil {
			m.bus.Publish(eventbus.CorpusFailedEvent{Err: msg.err})
		} else {
			m.bus.Publish(eventbus.CorpusLoadedEvent{Pages: msg.pages})
		}
		return m, nil

	case openPageMsg:
		m.logger.Info("opening page", "url", msg.entry.URL)
		return m, m.pager.Show(pageText(msg.entry))

	case pagerDoneMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", "error", msg.err)
		}
		return m, nil
	}

	// Everything else (debounce ticks, search results, cursor blinks) goes to every widget
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if cmd := w.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit

	case key.Matches(msg, m.keys.Down):
		return m.publishKey(domain.KeyDown)

	case key.Matches(msg, m.keys.Up):
		return m.publishKey(domain.KeyUp)

	case key.Matches(msg, m.keys.NextWidget):
		if len(m.widgets) == 0 {
			return nil
		}
		return m.focusWidget((m.focused + 1) % len(m.widgets))

	case msg.Type == tea.KeyF1:
		return m.showHelp()
	}

	w := m.FocusedWidget()
	if w == nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			return m.showHelp()
		}
		return nil
	}
	return w.HandleKey(msg)
}

func (m *Model) showHelp() tea.Cmd {
	return m.pager.Show(m.helpDoc.Render(m.keys))
}

// publishKey broadcasts a navigation key at document level
func (m *Model) publishKey(k domain.Key) tea.Cmd {
	focusID := ""
	if w := m.FocusedWidget(); w != nil {
		focusID = w.ID()
	}
	m.bus.Publish(eventbus.KeyPressedEvent{Key: k, FocusID: focusID})
	return m.drainWidgets()
}

// handleClick broadcasts a press and moves focus to the widget under it
func (m *Model) handleClick(x, y int) tea.Cmd {
	target := m.hitTest(y)
	m.bus.Publish(eventbus.ClickedEvent{Target: target, X: x, Y: y})

	cmds := []tea.Cmd{m.drainWidgets()}
	if target == "" {
		m.blurFocused()
	} else {
		for i, w := range m.widgets {
			if w.ID() == target && i != m.focused {
				cmds = append(cmds, m.focusWidget(i))
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) hitTest(y int) string {
	for _, r := range m.regions {
		if y >= r.top && y < r.top+r.lines {
			return r.id
		}
	}
	return ""
}

func (m *Model) focusWidget(i int) tea.Cmd {
	if i < 0 || i >= len(m.widgets) {
		return nil
	}
	m.blurFocused()
	m.focused = i
	return m.widgets[i].Focus()
}

func (m *Model) blurFocused() {
	if w := m.FocusedWidget(); w != nil {
		w.Blur()
	}
	m.focused = -1
}

func (m *Model) drainWidgets() tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.widgets {
		if cmd := w.TakeCmds(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View renders the UI and records where each widget landed for hit testing
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	frame := m.styles.Main
	top := frame.GetMarginTop() + frame.GetPaddingTop() + frame.GetBorderTopSize()
	inner := m.width - frame.GetHorizontalFrameSize()

	var sections []string
	title := m.styles.Title.Render("docsearch")
	sections = append(sections, title)
	line := top + lipgloss.Height(title) + m.styles.Title.GetMarginBottom()

	m.regions = m.regions[:0]
	for i, w := range m.widgets {
		view := w.View(m.styles, m.results, inner, i == m.focused)
		h := lipgloss.Height(view)
		m.regions = append(m.regions, region{id: w.ID(), top: line, lines: h})
		sections = append(sections, view)
		line += h
	}

	sections = append(sections, m.statusLine())
	if m.config.UISettings.ShowHelp && !m.config.UISettings.Small {
		sections = append(sections, m.styles.Help.Render(m.help.View(m.keys)))
	}

	return frame.Render(strings.Join(sections, "\n"))
}

func (m *Model) statusLine() string {
	switch {
	case !m.corpusReady:
		return m.styles.Status.Inherit(m.styles.StatusLoading).Render("loading corpus…")
	case m.corpusErr != nil:
		// Load failures stay out of the widgets; the status line only says the index is missing
		return m.styles.Status.Inherit(m.styles.StatusError).Render("search index unavailable")
	default:
		return m.styles.Status.Inherit(m.styles.StatusSuccess).Render(fmt.Sprintf("%d pages indexed", m.corpusPages))
	}
}

// Shutdown detaches every widget
func (m *Model) Shutdown() {
	for _, w := range m.widgets {
		w.Detach()
	}
	m.focused = -1
}
