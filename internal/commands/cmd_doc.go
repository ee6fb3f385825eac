package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
)

type DocCmd struct {
	flags *Flags
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "doc",
		Usage:  "Show the usage guide",
		Action: cmd.run,
	})
	return app
}

func (cmd *DocCmd) run(_ context.Context, c *cli.Command) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(usageGuide)
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, _ = fmt.Fprint(c.Root().Writer, out)
	return nil
}

const usageGuide = `# Speakbox Guide

Speakbox is a terminal client for a text-to-speech demo backend. It submits
text for synthesis, plays back the returned audio, and keeps a short local
history of past generations.

## Quick start

` + "```bash" + `
export DEEPGRAM_API_KEY=...   # or set backend.api_key in the config
speakbox say "Hello there"    # synthesize and record to history
speakbox                      # open the interactive view
` + "```" + `

## History

The five most recent generations are kept in local storage, newest first.
A sixth generation evicts the oldest. Entries survive restarts and can be
re-opened without re-running synthesis:

` + "```bash" + `
speakbox history              # list entries with their ids
speakbox open local_1712345   # write the stored audio to a playable file
speakbox open --play local_1712345
speakbox history --clear      # start over
` + "```" + `

Ids can also be handed straight to the interactive view:

` + "```bash" + `
speakbox --request-id local_1712345
` + "```" + `

## Configuration

Config lives at ` + "`$XDG_CONFIG_HOME/speakbox/config.yaml`" + `:

` + "```yaml" + `
backend:
  base_url: https://api.deepgram.com/v1/speak
  model: aura-2-thalia-en
history:
  limit: 5
player: ["afplay"]
` + "```" + `

## Known limitations

- History is local to one machine and one data directory; two processes
  writing at once are last-writer-wins.
- Stored audio is assumed to be in one fixed container when re-opened.
`
