package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/auth"
	"github.com/idilsaglam/tada/internal/ui"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the bearer token sent to the server",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return usagef("usage: todo auth <login|logout|status>")
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Store a token read from stdin",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Paste your token: ")
			sc := bufio.NewScanner(cmd.InOrStdin())
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read token: %w", err)
				}
				return fmt.Errorf("read token: no input")
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := app.Auth.Set(sc.Text(), nil); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged in")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _ := app.Auth.Get()
			if t != nil && t.Source == auth.SourceEnv {
				ui.OK(cmd.OutOrStdout(), "token is provided by "+auth.EnvToken+" (nothing to delete)")
				return nil
			}
			if err := app.Auth.Delete(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the token comes from",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			t, err := app.Auth.Get()
			if err != nil {
				return err
			}
			if t == nil {
				fmt.Fprintln(out, ui.Current().Muted.Render("not logged in"))
				fmt.Fprintln(out, "Run: todo auth login")
				return nil
			}
			fmt.Fprintf(out, "source: %s\n", t.Source)
			fmt.Fprintf(out, "token: %s\n", mask(t.Value))
			if t.ExpiresAt != nil {
				fmt.Fprintf(out, "expires: %s\n", t.ExpiresAt.UTC().Format(time.RFC3339))
			}
			fmt.Fprintf(out, "env override: %s\n", auth.EnvToken)
			return nil
		},
	})
	return cmd
}

func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:2] + strings.Repeat("*", len(token)-4) + token[len(token)-2:]
}
