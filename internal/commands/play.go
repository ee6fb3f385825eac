package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"speakbox/internal/core/history"
	"speakbox/pkg/executil"
)

// playEntry materializes an entry's audio to a temp file, plays it with the
// configured player, and removes the file afterwards.
func playEntry(ctx context.Context, flags *Flags, entry history.Entry) error {
	path, err := history.Materialize(entry, flags.Config.AudioDir())
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("could not remove audio file")
		}
	}()

	return playFile(ctx, flags, path)
}

// playFile runs the configured player command with path as its last argument.
func playFile(ctx context.Context, flags *Flags, path string) error {
	if len(flags.Config.Player) == 0 {
		return fmt.Errorf("no player configured; set 'player' in %s", flags.ConfigPath)
	}

	exec := &executil.RealExecutor{}
	args := append(flags.Config.Player[1:], path) //nolint:gocritic
	if out, err := exec.Run(ctx, flags.Config.Player[0], args...); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, out)
	}

	return nil
}
