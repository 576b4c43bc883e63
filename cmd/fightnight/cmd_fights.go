package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/fights"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/view"
)

func newFightsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fights",
		Short: "Upcoming fight cards",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List upcoming fights by date",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := c.app.Fights.FetchAllFights(cmd.Context())
				if err != nil {
					c.log.Warn("fights unavailable, using placeholder", zap.Error(err))
					fmt.Fprintln(cmd.ErrOrStderr(), view.PlaceholderNotice)
					list = fights.Placeholder(time.Now())
				}
				c.printFights(cmd.OutOrStdout(), list, view.NoFights)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search [term]",
			Short: "Search by fighter, title, sport or venue",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := c.app.Fights.SearchFights(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					c.log.Error("search fights", zap.Error(err))
					list = nil
				}
				c.printFights(cmd.OutOrStdout(), list, view.NoFights)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one fight",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := c.app.Fights.GetFightByID(cmd.Context(), args[0])
				if err != nil {
					c.log.Info("fight lookup", zap.String("id", args[0]), zap.Error(err))
					return lookupFailed(cmd.ErrOrStderr(), err, view.FightNotFound)
				}
				c.emit(cmd.OutOrStdout(), e, view.FightDetail(c.styles(), e, c.app.Favourites.IsFavourite(e.ID)))
				return nil
			},
		},
	)
	return cmd
}

func newFightersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fighters",
		Short: "Fighter profiles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "search [term]",
			Short: "Search fighters by name or nickname",
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := c.app.Fights.SearchFighters(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					c.log.Error("search fighters", zap.Error(err))
					list = nil
				}
				if c.jsonOut {
					printJSON(cmd.OutOrStdout(), nonNil(list))
					return nil
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), c.styles().Muted.Render(view.NoFighters))
					return nil
				}
				st := c.styles()
				for _, f := range list {
					fmt.Fprintln(cmd.OutOrStdout(), view.FighterLine(st, f))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show a fighter profile",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := c.app.Fights.GetFighter(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					c.log.Info("fighter lookup", zap.Strings("name", args), zap.Error(err))
					return lookupFailed(cmd.ErrOrStderr(), err, view.FighterNotFound)
				}
				c.emit(cmd.OutOrStdout(), f, view.FighterDetail(c.styles(), f))
				return nil
			},
		},
	)
	return cmd
}

func newPastCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "past",
		Short: "Recent results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.app.Fights.SearchPastEvents(cmd.Context())
			if err != nil {
				c.log.Error("past events", zap.Error(err))
				list = nil
			}
			c.printFights(cmd.OutOrStdout(), list, view.NoPastEvents)
			return nil
		},
	}
}

func (c *cli) printFights(w io.Writer, list []model.FightEvent, empty string) {
	if c.jsonOut {
		printJSON(w, nonNil(list))
		return
	}
	st := c.styles()
	if len(list) == 0 {
		fmt.Fprintln(w, st.Muted.Render(empty))
		return
	}
	for _, e := range list {
		fmt.Fprintf(w, "%-8s %s\n", e.ID, view.FightLine(st, e, c.app.Favourites.IsFavourite(e.ID)))
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
