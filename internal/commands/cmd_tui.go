package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"speakbox/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	requestID  string
	forceState string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{
		flags: flags,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "request-id",
			Usage:       "open a specific history entry on startup",
			Destination: &cmd.requestID,
		},
		&cli.StringFlag{
			Name:        "state",
			Usage:       "force an initial view state (waiting, results, error)",
			Hidden:      true, // development aid only
			Destination: &cmd.forceState,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(_ context.Context, _ *cli.Command) error {
	opts := tui.Options{
		RequestID:  cmd.requestID,
		ForceState: cmd.forceState,
	}

	m := tui.New(cmd.flags.Client, cmd.flags.History, cmd.flags.Config, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
