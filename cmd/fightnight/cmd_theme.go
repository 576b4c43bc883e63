package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/theme"
)

type themeToggler interface {
	Toggle(ctx context.Context) (theme.Theme, error)
}

// toggleTheme flips the mode for this run even when it cannot be saved.
func toggleTheme(ctx context.Context, out, errOut io.Writer, tp themeToggler, log *zap.Logger) {
	t, err := tp.Toggle(ctx)
	if err != nil {
		log.Warn("theme not saved", zap.Error(err))
		fmt.Fprintln(errOut, "Theme not saved, it applies to this run only")
	}
	fmt.Fprintf(out, "Theme: %s\n", t.Mode())
}

func newThemeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Light or dark colours",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				t := c.app.Theme.Current()
				st := c.styles()
				c.emit(cmd.OutOrStdout(), t, st.Header.Render("FightNight")+" "+st.Accent.Render(t.Mode()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				toggleTheme(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), c.app.Theme, c.log)
				return nil
			},
		},
	)
	return cmd
}
