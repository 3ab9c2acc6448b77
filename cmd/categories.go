package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *app) *cobra.Command {
	var profileID string
	var customOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List transaction categories, custom ones when the plan allows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			var report application.CategoriesReport
			fetch := func(ctx context.Context) error {
				var err error
				report, err = app.service.ListCategories(ctx, application.CategoriesQuery{ID: id, CustomOnly: customOnly})
				return err
			}
			if err := withSpinner(cmd, asJSON, "Fetching categories...", fetch); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, overview.NewCategoriesJSON(report))
			}

			rendered, err := app.renderCategories(report, overview.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render categories: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().BoolVar(&customOnly, "custom", false, "List custom categories only (Pro and Pro Trial)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
