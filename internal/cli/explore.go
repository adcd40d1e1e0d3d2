package cli

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// exploreCommand opens the interactive terminal explorer.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		source   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore the address graph interactively in the terminal",
		Long: `Explore the address graph interactively in the terminal.

The layout ticks on a frame timer while you navigate:

  ↑/↓ or j/k   select an address
  enter        click the selected address (reveals the next step)
  space        grab or release the selected address
  w/a/s/d      move the grabbed address
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, closeProvider, err := c.openSession(ctx, source)
			if err != nil {
				return err
			}
			defer closeProvider()

			if interval <= 0 {
				cfg, err := c.config()
				if err != nil {
					return err
				}
				interval = cfg.Layout.FrameInterval.Std()
			}

			// The TUI owns the terminal; keep log lines out of it.
			c.Logger.SetOutput(io.Discard)
			m := newExploreModel(ctx, sess, interval)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "reveal source: static, file, mongo (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "frame interval (default from config)")

	return cmd
}
