package main

import (
	"github.com/spf13/cobra"

	"github.com/and161185/fightnight/internal/tui"
)

func newBrowseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Aliases:     []string{"ui"},
		Short:       "Open the interactive browser",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"tui": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := c.app
			return tui.Run(cmd.Context(), tui.Deps{
				Fights:          a.Fights,
				Auth:            a.Auth,
				Favourites:      a.Favourites,
				Theme:           a.Theme,
				Log:             a.Log,
				DefaultUsername: a.Cfg.Login.DefaultUsername,
				DefaultPassword: a.Cfg.Login.DefaultPassword,
			})
		},
	}
}
