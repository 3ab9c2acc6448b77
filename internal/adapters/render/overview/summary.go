package overview

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const summaryBarWidth = 20

func renderSummary(report application.SummaryReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("%s summary", rangeLabel(report.Range))),
		s.header.Render(fmt.Sprintf("profile: %s, currency: %s", report.Profile.ID, report.DisplayCurrency)),
	}
	if report.FromCache {
		lines = append(lines, s.warning.Render("[offline] cached snapshot"))
	}

	peak := 0.0
	for _, bucket := range report.Buckets {
		peak = math.Max(peak, math.Max(bucket.Summary.TotalIncome, bucket.Summary.TotalExpense))
	}

	width := 0
	for _, bucket := range report.Buckets {
		if n := lipgloss.Width(bucket.Bucket.Label); n > width {
			width = n
		}
	}

	rows := make([]string, 0, len(report.Buckets))
	for _, bucket := range report.Buckets {
		rows = append(rows, bucketLine(bucket, width, peak, report.DisplayCurrency, s))
	}
	if len(rows) == 0 {
		rows = append(rows, s.empty.Render("no periods"))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	total := report.Total
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.key.Render("income:  ")+s.income.Render(domain.FormatAmount(total.TotalIncome, report.DisplayCurrency)),
		s.key.Render("expense: ")+s.expense.Render(domain.FormatAmount(total.TotalExpense, report.DisplayCurrency)),
		s.key.Render("net:     ")+s.detail.Render(domain.FormatAmount(total.Net, report.DisplayCurrency)),
		s.meta.Render(fmt.Sprintf("%d transactions", total.Count)),
	)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func bucketLine(bucket domain.BucketSummary, labelWidth int, peak float64, currency string, s styles) string {
	label := s.key.Render(fmt.Sprintf("%-*s", labelWidth, bucket.Bucket.Label))
	if bucket.Summary.Count == 0 {
		return label + "  " + s.empty.Render("-")
	}

	return strings.Join([]string{
		label,
		s.income.Render(scaledBar(bucket.Summary.TotalIncome, peak, "+")),
		s.expense.Render(scaledBar(bucket.Summary.TotalExpense, peak, "-")),
		s.detail.Render(fmt.Sprintf("net %s %s", currency, domain.CompactAmount(bucket.Summary.Net))),
	}, "  ")
}

func scaledBar(value, peak float64, glyph string) string {
	n := 0
	if peak > 0 && value > 0 {
		n = int(math.Ceil(value / peak * summaryBarWidth))
	}

	return fmt.Sprintf("%-*s", summaryBarWidth, strings.Repeat(glyph, n))
}

func rangeLabel(r domain.TimeRange) string {
	switch r {
	case domain.TimeRangeDaily:
		return "Daily"
	case domain.TimeRangeMonthly:
		return "Monthly"
	default:
		return "Weekly"
	}
}

func renderRates(report application.RatesReport, opts RenderOptions, s styles) string {
	source := "static fallback"
	if report.Source == application.RatesSourceLive {
		source = "live"
	}

	header := fmt.Sprintf("base: %s, source: %s", report.Base, source)
	if !report.UpdatedAt.IsZero() {
		header += ", updated " + formatAge(report.UpdatedAt, opts.Now)
	}

	lines := []string{s.title.Render("Exchange rates"), s.header.Render(header)}
	if report.Stale {
		lines = append(lines, s.warning.Render("[stale] run `ww rates --refresh`"))
	}

	codes := make([]string, 0, len(report.Rates))
	for code := range report.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]string, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, s.key.Render(fmt.Sprintf("%-4s", code))+" "+s.detail.Render(formatRate(report.Rates[code])))
	}
	if len(rows) == 0 {
		rows = append(rows, s.empty.Render("no rates"))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatRate(rate float64) string {
	if rate == math.Trunc(rate) && math.Abs(rate) < 1e15 {
		return fmt.Sprintf("%.0f", rate)
	}

	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", rate), "0"), ".")
}
