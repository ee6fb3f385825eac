package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"speakbox/internal/core/history"
	"speakbox/internal/printer"
)

type SayCmd struct {
	flags *Flags

	// Command-specific flags
	model  string
	output string
	play   bool
}

// NewSayCmd creates a new say command
func NewSayCmd(flags *Flags) *SayCmd {
	return &SayCmd{flags: flags}
}

// Register adds the say command to the application
func (cmd *SayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "say",
		Usage:     "Synthesize text to speech and record it in history",
		UsageText: "speakbox say [options] [text]",
		Description: `Submit text to the synthesis backend, save the result to local
history, and optionally write or play the audio.

Text is taken from the arguments, or from stdin when piped:

  speakbox say "Hello there"
  echo "Hello there" | speakbox say -o hello.wav`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "model",
				Aliases:     []string{"m"},
				Usage:       "voice model to use (defaults to the configured model)",
				Destination: &cmd.model,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the audio to a file",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "play",
				Usage:       "play the audio with the configured player",
				Destination: &cmd.play,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SayCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	text, err := cmd.inputText(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to synthesize")
	}

	result, err := cmd.flags.Client.Synthesize(ctx, text, cmd.model)
	if err != nil {
		return err
	}

	entry, err := cmd.flags.History.Append(ctx, result.Audio, text, result.Model, result.Meta())
	if err != nil {
		// The synthesis itself succeeded; surface the bookkeeping
		// failure but keep the audio usable.
		p.Errorf("could not save to history: %v", err)
		log.Warn().Err(err).Msg("history append failed")
		entry = history.New(result.Audio, text, result.Model, result.Meta())
	} else {
		p.Successf("Saved as %s (%s)", entry.ID, entry.Model)
	}

	if cmd.output != "" {
		if err := os.WriteFile(cmd.output, result.Audio, 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		p.Infof("Wrote %d bytes to %s", len(result.Audio), cmd.output)
	}

	if cmd.play {
		return playEntry(ctx, cmd.flags, entry)
	}

	return nil
}

// inputText returns the synthesis text from the command arguments, or from
// stdin when input is piped.
func (cmd *SayCmd) inputText(c *cli.Command) (string, error) {
	if c.Args().Len() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no text given; pass it as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(string(data), "\n"), nil
}
