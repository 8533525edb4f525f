package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

func runTUI(cmd *cobra.Command, app *App) error {
	client, err := app.newClient(api.LogObserver{Logger: app.Logger.With().Str("component", "api").Logger()})
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), client, tui.Options{
		Logger:    app.Logger.With().Str("component", "tui").Logger(),
		AltScreen: true,
	})
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print the list",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.load(); err != nil {
				return err
			}

			items := s.comp.Items()
			lines := []string{ui.Header(len(items)), ""}
			lines = append(lines, ui.ItemLines(items)...)
			lines = append(lines, "", ui.Current().Muted.Render(`Tip: add with todo add "Buy milk"`))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Create an item (the name can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			s.view.SetInput(strings.Join(args, " "))
			s.comp.Settle(s.comp.Create(s.view.Input()))
			if err := s.failures.err(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename an item",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.load(); err != nil {
				return err
			}

			id := model.ID(args[0])
			s.comp.StartEdit(id)
			if _, editing := s.comp.EditState().Active(); !editing {
				return fmt.Errorf("rename %s: %w", id, errNoSuchItem)
			}
			s.comp.Settle(s.comp.Commit(id, strings.Join(args[1:], " ")))
			if err := s.failures.err(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "renamed")
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			s.comp.Settle(s.comp.Delete(model.ID(args[0])))
			if err := s.failures.err(); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func newRenderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the list as HTML markup",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.load(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.view.HTML())
			return nil
		},
	}
}
