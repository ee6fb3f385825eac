package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakbox/internal/core/config"
	"speakbox/internal/core/history"
	"speakbox/internal/core/kv"
	"speakbox/internal/core/speak"
	"speakbox/internal/store/kvfile"
)

func newTestModel(t *testing.T, opts Options) (Model, history.Store) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	store := kvfile.NewHistoryStore(kv.NewMemory(), cfg.History.Limit, zerolog.Nop())
	client := speak.NewClient(speak.Config{})

	return New(client, store, &cfg, opts), store
}

func TestResolve(t *testing.T) {
	entries := []history.Entry{
		{ID: "local_2", Text: "second"},
		{ID: "local_1", Text: "first"},
	}

	t.Run("found", func(t *testing.T) {
		entry, errMsg := resolve(entries, "local_1")
		require.NotNil(t, entry)
		assert.Equal(t, "first", entry.Text)
		assert.Empty(t, errMsg)
	})

	t.Run("not found", func(t *testing.T) {
		entry, errMsg := resolve(entries, "local_12345")
		assert.Nil(t, entry)
		assert.Equal(t, "History entry not found: local_12345", errMsg)
	})

	t.Run("absent", func(t *testing.T) {
		entry, errMsg := resolve(entries, "")
		assert.Nil(t, entry)
		assert.Empty(t, errMsg)
	})

	t.Run("empty store", func(t *testing.T) {
		entry, errMsg := resolve(nil, "local_12345")
		assert.Nil(t, entry)
		assert.Equal(t, "History entry not found: local_12345", errMsg)
	})
}

func TestModel_DeepLinkFound(t *testing.T) {
	m, store := newTestModel(t, Options{})
	entry, err := store.Append(context.Background(), []byte{1}, "hello", "aura-2-thalia-en", nil)
	require.NoError(t, err)

	m.opts.RequestID = entry.ID
	entries, _ := store.List(context.Background())

	updated, cmd := m.Update(historyLoadedMsg{entries: entries})
	got := updated.(Model)

	assert.Equal(t, stateResults, got.state)
	assert.Equal(t, entry.ID, got.selectedID)
	require.NotNil(t, got.current)
	assert.Equal(t, "hello", got.current.Text)
	assert.NotNil(t, cmd, "materialization should be scheduled")
}

func TestModel_DeepLinkNotFound(t *testing.T) {
	m, _ := newTestModel(t, Options{RequestID: "local_12345"})

	updated, _ := m.Update(historyLoadedMsg{entries: nil})
	got := updated.(Model)

	assert.Equal(t, stateError, got.state)
	assert.Equal(t, "History entry not found: local_12345", got.errMsg)
	assert.Empty(t, got.selectedID, "no selection is made")
}

func TestModel_DeepLinkAbsent(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	updated, _ := m.Update(historyLoadedMsg{entries: nil})
	got := updated.(Model)

	assert.Equal(t, stateIdle, got.state)
	assert.Empty(t, got.selectedID)
}

func TestModel_ForceState(t *testing.T) {
	m, _ := newTestModel(t, Options{ForceState: "error"})
	assert.Equal(t, stateError, m.state)
	assert.NotEmpty(t, m.errMsg)

	m, _ = newTestModel(t, Options{ForceState: "waiting"})
	assert.Equal(t, stateWaiting, m.state)
}

func TestModel_SubmitWhileWaitingIgnored(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.state = stateWaiting
	m.input.SetValue("more text")
	seq := m.seq

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := updated.(Model)

	assert.Equal(t, stateWaiting, got.state)
	assert.Equal(t, seq, got.seq, "no new submission starts")
	assert.Nil(t, cmd)
}

func TestModel_StaleSynthesisDropped(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.seq = 2
	m.state = stateIdle

	updated, _ := m.Update(synthesisDoneMsg{seq: 1, err: errors.New("late failure")})
	got := updated.(Model)

	assert.Equal(t, stateIdle, got.state, "a superseded response changes nothing")
	assert.Empty(t, got.errMsg)
}

func TestModel_SynthesisError(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.seq = 1
	m.state = stateWaiting

	updated, _ := m.Update(synthesisDoneMsg{seq: 1, err: errors.New("synthesis failed: text too long")})
	got := updated.(Model)

	assert.Equal(t, stateError, got.state)
	assert.Contains(t, got.errMsg, "text too long")
}

func TestModel_SynthesisSuccess(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.seq = 1
	m.state = stateWaiting

	entry := history.New([]byte{1}, "hello", "aura-2-thalia-en", nil)
	updated, cmd := m.Update(synthesisDoneMsg{seq: 1, entry: entry})
	got := updated.(Model)

	assert.Equal(t, stateResults, got.state)
	assert.Equal(t, entry.ID, got.selectedID)
	require.NotNil(t, got.current)
	assert.Equal(t, "hello", got.current.Text)
	assert.NotNil(t, cmd, "history reload and materialization are scheduled")
}

func TestModel_EscResetsView(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	entry := history.New([]byte{1}, "hello", "aura-2-thalia-en", nil)
	m.state = stateResults
	m.current = &entry
	m.selectedID = entry.ID
	seq := m.seq

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(Model)

	assert.Equal(t, stateIdle, got.state)
	assert.Nil(t, got.current)
	assert.Empty(t, got.selectedID)
	assert.Greater(t, got.seq, seq, "in-flight responses are invalidated")
}

func TestModel_ClearedEmptiesList(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.entries = []history.Entry{{ID: "local_1"}}
	m.state = stateResults

	updated, _ := m.Update(clearedMsg{})
	got := updated.(Model)

	assert.Empty(t, got.entries)
	assert.Equal(t, stateIdle, got.state)
}
