package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/app"
	"github.com/and161185/fightnight/internal/config"
	"github.com/and161185/fightnight/internal/logger"
	"github.com/and161185/fightnight/internal/theme"
)

// cli carries global flags and the lazily built app for one invocation.
type cli struct {
	configPath string
	debug      bool
	jsonOut    bool

	cfg *config.Config
	log *zap.Logger
	app *app.App

	// tui selects file logging before the app is built.
	tui bool
}

// errShown marks an error whose message was already written for the user.
var errShown = errors.New("shown")

// run executes one invocation and always releases the app, so pending state
// is flushed even when a command fails.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fail(stderr, err)
		return exitCode(err)
	}
	return 0
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "fightnight",
		Short: "Browse upcoming fights, fighters and past results",
		Long: `fightnight shows combat-sports fight cards built from the DummyJSON demo
catalog, lets you search events and fighters, and keeps a favourites list.

Run "fightnight browse" for the interactive interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["skipApp"] == "true" {
				return nil
			}
			c.tui = cmd.Annotations["tui"] == "true"
			return c.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fightnight/config.yaml)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose console logging")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of styled text")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(c),
		newLogoutCmd(c),
		newRegisterCmd(c),
		newWhoamiCmd(c),
		newFightsCmd(c),
		newFightersCmd(c),
		newPastCmd(c),
		newFavouritesCmd(c),
		newThemeCmd(c),
		newBrowseCmd(c),
	)
	return root
}

func (c *cli) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.Env.Debug = true
		cfg.Env.Log.Level = "debug"
	}
	if c.tui && cfg.Env.Log.File == "" {
		cfg.Env.Log.File = filepath.Join(config.Dir(), "fightnight.log")
	}
	if cfg.Env.Log.File != "" {
		if err := ensureDir(filepath.Dir(cfg.Env.Log.File)); err != nil {
			return err
		}
	}
	log, err := logger.New(cfg.Env.Debug, cfg.Env.Log)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return err
	}
	c.cfg, c.log, c.app = cfg, log, a
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
}

func (c *cli) styles() theme.Styles { return c.app.Theme.Styles() }

// emit prints v as JSON when --json is set, otherwise the styled text.
func (c *cli) emit(w io.Writer, v any, text string) {
	if c.jsonOut {
		printJSON(w, v)
		return
	}
	fmt.Fprintln(w, text)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version",
		Annotations: map[string]string{"skipApp": "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fightnight %s (%s)\n", version, buildDate)
		},
	}
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
