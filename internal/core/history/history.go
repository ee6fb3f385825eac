// Package history defines the synthesis history domain types and interfaces.
package history

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"speakbox/pkg/randid"
)

// DefaultLimit is the number of history entries retained by default.
const DefaultLimit = 5

// Entry represents one recorded synthesis result. Entries are immutable
// once created; the audio bytes are copied into AudioData at construction
// and the original slice is not retained.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Text      string         `json:"text"`
	Model     string         `json:"model"`
	AudioData string         `json:"audio_data"`
	Response  map[string]any `json:"response,omitempty"`
}

// New creates an entry for a completed synthesis. The audio bytes are
// base64-encoded so the entry can live in a text-only storage medium.
func New(audio []byte, text, model string, response map[string]any) Entry {
	return Entry{
		ID:        NewID(),
		Timestamp: time.Now().UTC(),
		Text:      text,
		Model:     model,
		AudioData: base64.StdEncoding.EncodeToString(audio),
		Response:  response,
	}
}

// NewID generates a locally-unique entry id. Ids are derived from the
// current time; collisions are not actively prevented.
func NewID() string {
	return fmt.Sprintf("local_%d", time.Now().UnixMilli())
}

// Audio decodes the entry's stored audio back into raw bytes.
func (e Entry) Audio() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(e.AudioData)
	if err != nil {
		return nil, fmt.Errorf("decode audio for %s: %w", e.ID, err)
	}
	return b, nil
}

// Materialize decodes the entry's audio and writes it to a playable file
// under dir, returning the file path. Each call creates a new file; the
// caller owns its removal. The .wav container is assumed for all entries.
func Materialize(e Entry, dir string) (string, error) {
	audio, err := e.Audio()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("speakbox-%s-%s.wav", e.ID, randid.Generate(6)))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}

	return path, nil
}
