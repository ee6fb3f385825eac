package history

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestEntry_AudioRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x52, 0x49, 0x46, 0x46},
		{0x00},
		{0x00, 0xff, 0x7f, 0x80, 0x01},
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 1024),
		{},
	}

	for _, audio := range cases {
		entry := New(audio, "hello", "aura-2-thalia-en", nil)

		got, err := entry.Audio()
		if err != nil {
			t.Fatalf("Audio failed: %v", err)
		}
		if !bytes.Equal(got, audio) {
			t.Errorf("Audio = %v, want %v", got, audio)
		}
	}
}

func TestNew_Fields(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46}
	entry := New(audio, "hello", "aura-2-thalia-en", map[string]any{"request_id": "abc"})

	if !strings.HasPrefix(entry.ID, "local_") {
		t.Errorf("ID = %q, want local_ prefix", entry.ID)
	}
	if entry.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if entry.Text != "hello" {
		t.Errorf("Text = %q, want %q", entry.Text, "hello")
	}
	if entry.Model != "aura-2-thalia-en" {
		t.Errorf("Model = %q, want %q", entry.Model, "aura-2-thalia-en")
	}
	if entry.Response["request_id"] != "abc" {
		t.Errorf("Response[request_id] = %v, want %q", entry.Response["request_id"], "abc")
	}

	// The audio field must be text-safe, not the raw bytes.
	if entry.AudioData == string(audio) {
		t.Error("AudioData should be encoded, not raw bytes")
	}
}

func TestEntry_AudioCorrupt(t *testing.T) {
	entry := Entry{ID: "local_1", AudioData: "not base64!!!"}

	if _, err := entry.Audio(); err == nil {
		t.Error("Audio should fail on invalid encoding")
	}
}

func TestMaterialize(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46}
	entry := New(audio, "hello", "aura-2-thalia-en", nil)
	dir := t.TempDir()

	path, err := Materialize(entry, dir)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read materialized file: %v", err)
	}
	if !bytes.Equal(data, audio) {
		t.Errorf("materialized bytes = %v, want %v", data, audio)
	}

	// Each call creates a new transient file.
	path2, err := Materialize(entry, dir)
	if err != nil {
		t.Fatalf("second Materialize failed: %v", err)
	}
	if path == path2 {
		t.Errorf("expected distinct files, got %q twice", path)
	}
}

func TestMaterialize_CorruptAudio(t *testing.T) {
	entry := Entry{ID: "local_1", AudioData: "%%%"}

	if _, err := Materialize(entry, t.TempDir()); err == nil {
		t.Error("Materialize should fail on undecodable audio")
	}
}
