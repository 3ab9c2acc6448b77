package overview

import (
	"fmt"
	"math"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderCategories(report application.CategoriesReport, s styles) string {
	lines := []string{
		s.title.Render("Categories"),
		s.header.Render(fmt.Sprintf("profile: %s, plan: %s", report.Profile.ID, report.Entitlements.EffectiveTier.Label())),
	}

	if report.Categories != nil {
		rows := make([]string, 0, len(report.Categories))
		for _, category := range report.Categories {
			rows = append(rows, categoryLine(category, s))
		}
		if len(rows) == 0 {
			rows = append(rows, s.empty.Render("no categories"))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	if !report.CustomAllowed {
		lines = append(lines, s.warning.Render("custom categories need a Pro plan"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := []string{s.key.Render("custom:")}
	for _, category := range report.Custom {
		rows = append(rows, categoryLine(category, s))
	}
	if len(report.Custom) == 0 {
		rows = append(rows, s.empty.Render("no custom categories"))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func categoryLine(category domain.Category, s styles) string {
	kind := s.income.Render(fmt.Sprintf("%-7s", category.Type))
	if category.Type == domain.TransactionExpense {
		kind = s.expense.Render(fmt.Sprintf("%-7s", category.Type))
	}

	line := kind + "  " + s.detail.Render(category.Name)
	if category.IsSystem {
		line += " " + s.meta.Render("[system]")
	}

	return line
}

func renderAnalytics(report application.AnalyticsReport, s styles) string {
	lines := []string{
		s.title.Render("Analytics"),
		s.header.Render(fmt.Sprintf("profile: %s, currency: %s", report.Profile.ID, report.DisplayCurrency)),
	}
	if report.FromCache {
		lines = append(lines, s.warning.Render("[offline] cached snapshot"))
	}

	lines = append(lines,
		s.section.Render(categoryBlock("spending by category", report.Expenses, report.DisplayCurrency, s.expense, s)),
		s.section.Render(categoryBlock("income by category", report.Income, report.DisplayCurrency, s.income, s)),
	)

	peak := 0.0
	for _, month := range report.Months {
		peak = math.Max(peak, math.Max(month.Summary.TotalIncome, month.Summary.TotalExpense))
	}
	width := 0
	for _, month := range report.Months {
		if n := lipgloss.Width(month.Bucket.Label); n > width {
			width = n
		}
	}
	rows := []string{s.key.Render("monthly breakdown:")}
	for _, month := range report.Months {
		rows = append(rows, bucketLine(month, width, peak, report.DisplayCurrency, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	total := report.Total
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.key.Render("income:  ")+s.income.Render(domain.FormatAmount(total.TotalIncome, report.DisplayCurrency)),
		s.key.Render("expense: ")+s.expense.Render(domain.FormatAmount(total.TotalExpense, report.DisplayCurrency)),
		s.key.Render("net:     ")+s.detail.Render(domain.FormatAmount(total.Net, report.DisplayCurrency)),
	)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func categoryBlock(title string, rows []domain.CategoryTotal, currency string, amount lipgloss.Style, s styles) string {
	out := []string{s.key.Render(title + ":")}
	if len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(out, s.empty.Render("none"))...)
	}

	width := 0
	for _, row := range rows {
		if n := lipgloss.Width(row.Category); n > width {
			width = n
		}
	}
	for _, row := range rows {
		out = append(out, fmt.Sprintf("%s  %s  %s",
			s.detail.Render(fmt.Sprintf("%-*s", width, row.Category)),
			amount.Render(domain.FormatAmount(row.Amount, currency)),
			s.meta.Render(fmt.Sprintf("(%d)", row.Count)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, out...)
}
