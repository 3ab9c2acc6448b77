package overview

import (
	"errors"
	"io"

	"github.com/bnema/walletwise-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	draw   func(styles) string
	styles styles
	output string
}

func newModel(draw func(styles) string) model {
	return model{
		draw:   draw,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.draw(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func run(draw func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(draw),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// Render draws the entitlement overview of each profile.
func Render(overviews []application.Overview, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderView(overviews, opts, s)
	})
}

func RenderSummary(report application.SummaryReport, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSummary(report, opts, s)
	})
}

func RenderRates(report application.RatesReport, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderRates(report, opts, s)
	})
}

func RenderCategories(report application.CategoriesReport, _ RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderCategories(report, s)
	})
}

func RenderAnalytics(report application.AnalyticsReport, _ RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderAnalytics(report, s)
	})
}
