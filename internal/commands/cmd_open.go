package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"speakbox/internal/core/history"
	"speakbox/internal/printer"
)

type OpenCmd struct {
	flags *Flags

	// Command-specific flags
	play bool
	keep bool
}

// NewOpenCmd creates a new open command
func NewOpenCmd(flags *Flags) *OpenCmd {
	return &OpenCmd{flags: flags}
}

// Register adds the open command to the application
func (cmd *OpenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "open",
		Usage:     "Re-open a past synthesis result by its request id",
		UsageText: "speakbox open [options] <request-id>",
		Description: `Look up a history entry by id, write its audio to a playable file,
and print the file path. Use 'speakbox history' to list ids.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "play",
				Usage:       "play the audio with the configured player",
				Destination: &cmd.play,
			},
			&cli.BoolFlag{
				Name:        "keep",
				Usage:       "keep the materialized file after playing",
				Destination: &cmd.keep,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *OpenCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one request id")
	}
	id := c.Args().First()

	entry, err := cmd.flags.History.Get(ctx, id)
	if errors.Is(err, history.ErrNotFound) {
		p.Errorf("History entry not found: %s", id)
		return fmt.Errorf("history entry not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("look up history entry: %w", err)
	}

	if cmd.play && !cmd.keep {
		p.Infof("%s %s (%s)", entry.ID, entry.Model, entry.Timestamp.Format("2006-01-02 15:04:05"))
		return playEntry(ctx, cmd.flags, entry)
	}

	path, err := history.Materialize(entry, cmd.flags.Config.AudioDir())
	if err != nil {
		return err
	}

	p.Successf("%s → %s", entry.ID, path)
	_, _ = fmt.Fprintln(c.Root().Writer, path)

	if cmd.play {
		return playFile(ctx, cmd.flags, path)
	}

	return nil
}
