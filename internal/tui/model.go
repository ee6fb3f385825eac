package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"speakbox/internal/core/config"
	"speakbox/internal/core/history"
	"speakbox/internal/core/speak"
)

// ViewState represents the current state of the main view.
type ViewState int

const (
	stateIdle ViewState = iota
	stateWaiting
	stateResults
	stateError
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
	keyTab   = "tab"
	keyEsc   = "esc"
)

// focusArea tracks which pane receives key input.
type focusArea int

const (
	focusInput focusArea = iota
	focusHistory
)

// Options configures the TUI behavior.
type Options struct {
	RequestID  string // history entry to open on startup (deep link)
	ForceState string // development aid: force waiting|results|error
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg    *config.Config
	client *speak.Client
	store  history.Store
	opts   Options

	state   ViewState
	focus   focusArea
	input   textarea.Model
	spinner spinner.Model

	entries    []history.Entry
	cursor     int
	selectedID string         // id of the entry shown in the main view
	current    *history.Entry // entry shown in the main view
	audioPath  string         // materialized audio for the current entry
	errMsg     string

	// seq numbers each submission so a response that arrives after the
	// view was reset is dropped instead of clobbering newer state.
	seq int

	width    int
	height   int
	quitting bool
}

// New creates the TUI model.
func New(client *speak.Client, store history.Store, cfg *config.Config, opts Options) Model {
	input := textarea.New()
	input.Placeholder = "Enter text to synthesize..."
	input.SetHeight(3)
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = waitingStyle

	m := Model{
		cfg:     cfg,
		client:  client,
		store:   store,
		opts:    opts,
		state:   stateIdle,
		focus:   focusInput,
		input:   input,
		spinner: sp,
	}

	switch opts.ForceState {
	case "waiting":
		m.state = stateWaiting
	case "error":
		m.state = stateError
		m.errMsg = "Something went wrong."
	case "results":
		m.state = stateResults // filled in once history loads
	}

	return m
}

// historyLoadedMsg is sent when history entries are loaded.
type historyLoadedMsg struct {
	entries []history.Entry
}

// synthesisDoneMsg is sent when a synthesis round trip completes.
type synthesisDoneMsg struct {
	seq   int
	entry history.Entry
	err   error
}

// openedMsg is sent when an entry's audio has been materialized.
type openedMsg struct {
	entry history.Entry
	path  string
	err   error
}

// clearedMsg is sent when the history store has been cleared.
type clearedMsg struct {
	err error
}

// Init loads history and resolves any deep-linked request id.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, m.loadHistory())
}

// loadHistory reads the store. List never fails: corrupted or missing
// storage is reported as an empty history.
func (m Model) loadHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		entries, _ := store.List(context.Background())
		return historyLoadedMsg{entries: entries}
	}
}

// submit sends the current input text to the synthesis backend and records
// the result. The returned message carries the submission sequence number.
func (m Model) submit(seq int, text string) tea.Cmd {
	client := m.client
	store := m.store
	return func() tea.Msg {
		result, err := client.Synthesize(context.Background(), text, "")
		if err != nil {
			return synthesisDoneMsg{seq: seq, err: err}
		}

		entry, err := store.Append(context.Background(), result.Audio, text, result.Model, result.Meta())
		return synthesisDoneMsg{seq: seq, entry: entry, err: err}
	}
}

// open materializes an entry's audio for display.
func (m Model) open(entry history.Entry) tea.Cmd {
	dir := m.cfg.AudioDir()
	return func() tea.Msg {
		path, err := history.Materialize(entry, dir)
		return openedMsg{entry: entry, path: path, err: err}
	}
}

// clearHistory empties the store.
func (m Model) clearHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return clearedMsg{err: store.Clear(context.Background())}
	}
}

// resolve maps a request id onto the loaded entries: the matching entry, or
// a user-visible error when the id is present but unknown. An empty id
// resolves to the default view. The result depends only on its inputs.
func resolve(entries []history.Entry, requestID string) (*history.Entry, string) {
	if requestID == "" {
		return nil, ""
	}
	for i := range entries {
		if entries[i].ID == requestID {
			return &entries[i], ""
		}
	}
	return nil, "History entry not found: " + requestID
}

// Update handles incoming events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case historyLoadedMsg:
		return m.onHistoryLoaded(msg)

	case synthesisDoneMsg:
		return m.onSynthesisDone(msg)

	case openedMsg:
		return m.onOpened(msg)

	case clearedMsg:
		if msg.err != nil {
			m.state = stateError
			m.errMsg = "Could not clear history: " + msg.err.Error()
			return m, nil
		}
		m.entries = nil
		m.cursor = 0
		return m.resetView(), nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m.updateInput(msg)
}

func (m Model) onHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	m.entries = msg.entries
	if m.cursor >= len(m.entries) {
		m.cursor = 0
	}

	// Mock states forced via --state bypass resolution entirely.
	if m.opts.ForceState == "results" && m.current == nil && len(m.entries) > 0 {
		m.current = &m.entries[0]
		m.selectedID = m.entries[0].ID
		return m, nil
	}
	if m.opts.ForceState != "" {
		return m, nil
	}

	if m.opts.RequestID != "" && m.current == nil && m.state != stateError {
		entry, errMsg := resolve(m.entries, m.opts.RequestID)
		if errMsg != "" {
			m.state = stateError
			m.errMsg = errMsg
			return m, nil
		}
		m.state = stateResults
		m.current = entry
		m.selectedID = entry.ID
		return m, m.open(*entry)
	}

	return m, nil
}

func (m Model) onSynthesisDone(msg synthesisDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		// A newer submission or a reset superseded this response.
		return m, nil
	}

	if msg.err != nil {
		m.state = stateError
		m.errMsg = msg.err.Error()
		return m, nil
	}

	m.state = stateResults
	entry := msg.entry
	m.current = &entry
	m.selectedID = entry.ID
	m.input.Reset()
	return m, tea.Batch(m.loadHistory(), m.open(entry))
}

func (m Model) onOpened(msg openedMsg) (tea.Model, tea.Cmd) {
	if m.current == nil || m.current.ID != msg.entry.ID {
		return m, nil // selection changed while materializing
	}
	if msg.err != nil {
		m.state = stateError
		m.errMsg = msg.err.Error()
		return m, nil
	}
	m.audioPath = msg.path
	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case keyTab:
		if m.focus == focusInput {
			m.focus = focusHistory
			m.input.Blur()
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case keyEsc:
		return m.resetView(), nil

	case keyEnter:
		if m.focus == focusInput {
			return m.onSubmit()
		}
		return m.onOpenSelected()
	}

	if m.focus == focusHistory {
		switch key {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil
		case "c":
			return m, m.clearHistory()
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// onSubmit starts a synthesis request. Input is ignored while a request is
// already in flight so only one request runs at a time.
func (m Model) onSubmit() (tea.Model, tea.Cmd) {
	if m.state == stateWaiting {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.seq++
	m.state = stateWaiting
	m.errMsg = ""
	return m, tea.Batch(m.spinner.Tick, m.submit(m.seq, text))
}

func (m Model) onOpenSelected() (tea.Model, tea.Cmd) {
	if len(m.entries) == 0 || m.cursor >= len(m.entries) {
		return m, nil
	}

	entry := m.entries[m.cursor]
	m.state = stateResults
	m.errMsg = ""
	m.current = &entry
	m.selectedID = entry.ID
	m.audioPath = ""
	return m, m.open(entry)
}

// resetView returns to the default empty state and clears the selection.
// In-flight responses are invalidated by bumping the sequence number.
func (m Model) resetView() Model {
	m.seq++
	m.state = stateIdle
	m.errMsg = ""
	m.current = nil
	m.selectedID = ""
	m.audioPath = ""
	m.opts.RequestID = ""
	m.opts.ForceState = ""
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Input is frozen while a request is in flight.
	if m.state == stateWaiting {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
