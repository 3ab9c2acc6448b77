package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/walletwise-cli/internal/adapters/export/xlsx"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var profileID string
	var out string
	var offline bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export wallets and transactions to an .xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			data, err := app.service.PrepareExport(cmd.Context(), application.OverviewQuery{ID: id, Offline: offline})
			if err != nil {
				return err
			}

			if err := writeWorkbook(out, data); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d wallets and %d transactions to %s\n",
				len(data.Overview.Wallets), len(data.Transactions), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().StringVar(&out, "out", "", "Output .xlsx path")
	cmd.Flags().BoolVar(&offline, "offline", false, "Export the cached snapshot without calling the API")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func writeWorkbook(path string, data application.ExportData) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	writeErr := xlsx.Write(file, data)
	closeErr := file.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write export file: %w", err)
	}

	return nil
}
