package overview

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(overviews []application.Overview, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("WalletWise Plans"),
		s.header.Render(fmt.Sprintf("profiles: %d", len(overviews))),
	}

	if len(overviews) == 0 {
		lines = append(lines, s.empty.Render("No profiles configured. Run `ww auth login --profile <name>` first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, overview := range overviews {
		lines = append(lines, s.section.Render(renderProfile(overview, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(o application.Overview, opts RenderOptions, s styles) string {
	parts := []string{s.profile.Render(profileTitle(o))}

	if o.LoadErr != nil {
		parts = append(parts, s.warning.Render(fmt.Sprintf("error: %v", o.LoadErr)))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, planLine(o, s))
	if line := trialLine(o, opts, s); line != "" {
		parts = append(parts, line)
	}
	if o.PlanErr == nil {
		parts = append(parts, walletLimitLine(o.WalletLimit, s), featuresLine(o.Entitlements.Limits, s))
	}
	parts = append(parts, totalLine(o, s), ratesLine(o, s))
	parts = append(parts, walletLines(o.Wallets, s)...)
	if line := snapshotLine(o, opts, s); line != "" {
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func profileTitle(o application.Overview) string {
	email := strings.TrimSpace(o.User.Email)
	if email == "" {
		return string(o.Profile.ID)
	}

	return fmt.Sprintf("%s (%s)", o.Profile.ID, email)
}

func planLine(o application.Overview, s styles) string {
	label := s.key.Render("plan:")
	if o.PlanErr != nil {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			label, " ",
			s.warning.Render(fmt.Sprintf("unable to determine plan (tier %q)", string(o.Entitlements.Tier))),
		)
	}

	ent := o.Entitlements
	plan := s.detail.Render(ent.Tier.Label())
	if ent.EffectiveTier != ent.Tier {
		plan = s.detail.Render(fmt.Sprintf("%s, effective %s", ent.Tier.Label(), ent.EffectiveTier.Label()))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", plan)
	if ent.TrialLapsed {
		line += " " + s.warning.Render("[trial ended]")
	}
	if !o.User.Subscription.IsActive && ent.Tier != domain.TierFree {
		line += " " + s.meta.Render("(inactive)")
	}

	return line
}

func trialLine(o application.Overview, opts RenderOptions, s styles) string {
	if o.Entitlements.Tier != domain.TierProTrial {
		return ""
	}

	end := o.User.Subscription.End
	switch {
	case end.Never():
		return s.meta.Render("trial: no end date")
	case end.Unparsed():
		return s.warning.Render(fmt.Sprintf("trial: unreadable end date %q, treated as active", end.Raw()))
	}

	at, _ := end.Time()
	if o.Entitlements.TrialLapsed {
		return s.meta.Render(fmt.Sprintf("trial: ended %s", at.Format("02 Jan 2006")))
	}
	if o.TrialRemaining == nil {
		return ""
	}

	return s.meta.Render(fmt.Sprintf("trial: %s", formatRemaining(*o.TrialRemaining, at, opts.Now)))
}

func walletLimitLine(limit domain.WalletLimit, s styles) string {
	label := s.key.Render("wallets:")
	if limit.Max == nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.detail.Render(fmt.Sprintf("%d (unlimited)", limit.Current)))
	}

	usedPercent := 100.0
	if *limit.Max > 0 {
		usedPercent = float64(limit.Current) / float64(*limit.Max) * 100
	}

	leftPercent := clampPercent(100 - usedPercent)
	countStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderProgressBar(usedPercent, 12, s),
		" ",
		countStyle.Render(fmt.Sprintf("%d/%d", limit.Current, *limit.Max)),
	)
	if !limit.CanCreate {
		line += " " + s.warning.Render("[limit reached]")
	}

	return line
}

func featuresLine(limits domain.TierLimits, s styles) string {
	feature := func(name string, on bool) string {
		if on {
			return s.enabled.Render(name + " yes")
		}
		return s.disabled.Render(name + " no")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("features:"),
		" ",
		feature("analytics", limits.Analytics),
		s.meta.Render(", "),
		feature("export", limits.Export),
		s.meta.Render(", "),
		feature("custom categories", limits.CustomCategories),
	)
}

func totalLine(o application.Overview, s styles) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("total:"),
		" ",
		s.detail.Render(domain.FormatAmount(o.TotalBalance, o.DisplayCurrency)),
	)

	if n := o.Frozen.Len(); n > 0 {
		noun := "wallets"
		if n == 1 {
			noun = "wallet"
		}
		line += " " + s.meta.Render(fmt.Sprintf("(%d frozen %s excluded)", n, noun))
	}

	return line
}

func ratesLine(o application.Overview, s styles) string {
	text := "static fallback"
	if o.RatesSource == application.RatesSourceLive {
		text = "live"
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render("rates:"), " ", s.detail.Render(text))
	if o.RatesStale {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func walletLines(views []domain.WalletView, s styles) []string {
	if len(views) == 0 {
		return []string{s.empty.Render("  no wallets")}
	}

	width := 0
	for _, view := range views {
		if n := lipgloss.Width(view.Name); n > width {
			width = n
		}
	}

	lines := make([]string, 0, len(views))
	for _, view := range views {
		name := fmt.Sprintf("  %-*s", width, view.Name)
		amount := domain.FormatAmount(view.Balance, view.Currency)
		if !strings.EqualFold(view.Currency, view.DisplayCurrency) {
			amount += " " + s.meta.Render("≈ "+domain.FormatAmount(view.DisplayBalance, view.DisplayCurrency))
		}

		if view.Frozen {
			lines = append(lines, s.frozen.Render(name)+"  "+s.empty.Render(amount)+" "+s.warning.Render("[frozen]"))
			continue
		}
		lines = append(lines, s.detail.Render(name)+"  "+amount)
	}

	return lines
}

func snapshotLine(o application.Overview, opts RenderOptions, s styles) string {
	if !o.FromCache {
		return ""
	}

	when := "unknown time"
	if !o.CapturedAt.IsZero() {
		when = formatAge(o.CapturedAt, opts.Now)
	}

	return s.warning.Render(fmt.Sprintf("[offline] cached snapshot from %s", when))
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatRemaining(remaining time.Duration, end, now time.Time) string {
	if remaining <= 0 {
		return "ends now"
	}

	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		if hours < 1 {
			hours = 1
		}
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("ends in %d %s (%s)", hours, suffix, end.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}

	if now.IsZero() {
		return fmt.Sprintf("ends in %d %s", days, suffix)
	}

	return fmt.Sprintf("ends in %d %s (%s)", days, suffix, end.Format("02 Jan 2006"))
}

func formatAge(at, now time.Time) string {
	if now.IsZero() || at.After(now) {
		return at.Format(time.RFC3339)
	}

	age := now.Sub(at)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%d min ago", int(age.Minutes()))
	case age < 48*time.Hour:
		return fmt.Sprintf("%d hours ago", int(age.Hours()))
	default:
		return at.Format("02 Jan 2006 15:04")
	}
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	colorCode := int(240.0 + 15.0*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
