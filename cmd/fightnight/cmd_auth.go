package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/model"
	"github.com/and161185/fightnight/internal/view"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with DummyJSON credentials (default emilys / emilyspass)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The test password only goes with the test username.
			if !cmd.Flags().Changed("username") {
				username = c.cfg.Login.DefaultUsername
				if !cmd.Flags().Changed("password") {
					password = c.cfg.Login.DefaultPassword
				}
			}

			u, err := c.app.Auth.Login(cmd.Context(), username, password)
			switch {
			case err == nil:
			case errors.Is(err, errs.ErrValidation):
				fmt.Fprintln(cmd.ErrOrStderr(), "Please enter username and password")
				return fmt.Errorf("%w: %w", errShown, err)
			case errors.Is(err, errs.ErrUnauthorized):
				fmt.Fprintln(cmd.ErrOrStderr(), "Login failed: "+view.LoginHint)
				return errShown
			case errors.Is(err, errs.ErrRateLimited):
				fmt.Fprintf(cmd.ErrOrStderr(), "Login failed: too many attempts (%v)\n", err)
				return errShown
			default:
				c.log.Error("login", zap.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), "Login failed: service unavailable, try again later")
				return errShown
			}

			c.emit(cmd.OutOrStdout(), u, c.styles().Success.Render("Welcome, "+u.Name+"!"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Auth.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCmd(c *cli) *cobra.Command {
	var in model.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account (demo only, nothing is sent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := c.app.Auth.Register(cmd.Context(), in)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Please fill in all fields:", err)
				return fmt.Errorf("%w: %w", errShown, err)
			}
			c.emit(cmd.OutOrStdout(), map[string]string{"id": id, "message": view.RegisterSuccess},
				c.styles().Success.Render(view.RegisterSuccess))
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	return cmd
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := c.app.Auth.Session()
			if !sess.IsAuthenticated || sess.User == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Not logged in")
				return errShown
			}
			if c.jsonOut {
				printJSON(cmd.OutOrStdout(), sess.User)
				return nil
			}
			out := view.Profile(c.styles(), *sess.User)
			if exp, ok := c.app.Auth.TokenExpiry(); ok {
				out += "\n" + c.styles().Muted.Render("token expires "+exp.Local().Format(time.RFC1123))
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
