package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/view"
)

func newFavouritesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favourites",
		Aliases: []string{"favs", "fav"},
		Short:   "Saved fights",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved fights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.printFights(cmd.OutOrStdout(), c.app.Favourites.List(), view.NoFavourites)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Save a fight by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.app.Favourites.AddByID(cmd.Context(), args[0])
			if err != nil {
				c.log.Info("favourite add", zap.String("id", args[0]), zap.Error(err))
				return lookupFailed(cmd.ErrOrStderr(), err, view.FightNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", e.Title)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Forget a saved fight",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Favourites.IsFavourite(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", view.NotFavourite, args[0])
				return nil
			}
			c.app.Favourites.Remove(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Save or forget a fight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := c.app.Favourites.ToggleByID(cmd.Context(), args[0])
			if err != nil {
				c.log.Info("favourite toggle", zap.String("id", args[0]), zap.Error(err))
				return lookupFailed(cmd.ErrOrStderr(), err, view.FightNotFound)
			}
			if on {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget all saved fights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := c.app.Favourites.Count()
			c.app.Favourites.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d favourites\n", n)
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, toggle, clearCmd)
	return cmd
}
