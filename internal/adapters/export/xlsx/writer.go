package xlsx

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetWallets      = "Wallets"
	SheetTransactions = "Transactions"

	dateLayout = "2006-01-02"
)

// Write renders data as a workbook with summary, wallets and transactions
// sheets.
func Write(w io.Writer, data application.ExportData) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	for _, sheet := range []string{SheetWallets, SheetTransactions} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create %s sheet: %w", sheet, err)
		}
	}

	if err := writeSummary(f, data); err != nil {
		return err
	}
	if err := writeWallets(f, data.Overview); err != nil {
		return err
	}
	if err := writeTransactions(f, data); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, data application.ExportData) error {
	o := data.Overview
	rows := [][]interface{}{
		{"Profile", string(o.Profile.ID)},
		{"Email", o.User.Email},
		{"Tier", string(o.Entitlements.Tier)},
		{"Effective tier", string(o.Entitlements.EffectiveTier)},
		{"Display currency", o.DisplayCurrency},
		{"Total balance", o.TotalBalance},
		{"Frozen wallets", o.Frozen.Len()},
		{"Rates", string(o.RatesSource)},
		{"Captured at", formatTime(o.CapturedAt, time.RFC3339)},
		{"Generated at", formatTime(data.GeneratedAt, time.RFC3339)},
	}

	return setRows(f, SheetSummary, 1, rows)
}

func writeWallets(f *excelize.File, o application.Overview) error {
	header := []interface{}{"wallet_id", "name", "currency", "balance", "display_currency", "display_balance", "frozen", "created_at"}
	rows := [][]interface{}{header}
	for _, view := range o.Wallets {
		rows = append(rows, []interface{}{
			string(view.ID),
			view.Name,
			view.Currency,
			view.Balance,
			view.DisplayCurrency,
			view.DisplayBalance,
			view.Frozen,
			formatTime(view.CreatedAt, time.RFC3339),
		})
	}

	return setRows(f, SheetWallets, 1, rows)
}

func writeTransactions(f *excelize.File, data application.ExportData) error {
	currencies := make(map[domain.WalletID]string, len(data.Overview.Wallets))
	for _, view := range data.Overview.Wallets {
		currencies[view.ID] = view.Currency
	}

	txs := make([]domain.Transaction, len(data.Transactions))
	copy(txs, data.Transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	header := []interface{}{"date", "transaction_id", "wallet_id", "type", "category", "amount", "currency", "description", "frozen"}
	rows := [][]interface{}{header}
	for _, tx := range txs {
		currency := currencies[tx.WalletID]
		if currency == "" {
			currency = domain.BaseCurrency
		}
		rows = append(rows, []interface{}{
			formatTime(tx.Date, dateLayout),
			string(tx.ID),
			string(tx.WalletID),
			string(tx.Type),
			tx.Category,
			tx.Amount,
			currency,
			tx.Description,
			data.Overview.Frozen.Has(tx.WalletID),
		})
	}

	return setRows(f, SheetTransactions, 1, rows)
}

func setRows(f *excelize.File, sheet string, firstRow int, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, firstRow+i, err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, firstRow+i, err)
		}
	}

	return nil
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(layout)
}
