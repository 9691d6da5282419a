package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/payequity/equisim/internal/convergence"
	"github.com/payequity/equisim/internal/forecast"
)

// View renders the employee list beside the detail pane.
func (m Model) View() string {
	if m.err != nil {
		return AppStyle.Render(ErrorStyle.Render("Error: " + m.err.Error()))
	}
	if m.loading && m.employees == nil {
		return AppStyle.Render("Loading population snapshot...")
	}

	detail := m.detailView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detail)
	status := StatusBarStyle.Render("enter: analyze · tab: switch view · q: quit")
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, status))
}

func (m Model) detailView() string {
	width := m.width/2 - 8
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	switch m.mode {
	case modeConvergence:
		b.WriteString(TitleStyle.Render("Convergence Timeline"))
		b.WriteString("\n\n")
		m.renderTimeline(&b)
	default:
		b.WriteString(TitleStyle.Render("Salary Projection"))
		b.WriteString("\n\n")
		m.renderProjection(&b)
	}
	return DetailStyle.Width(width).Render(b.String())
}

func (m Model) renderProjection(b *strings.Builder) {
	if m.projection == nil {
		b.WriteString(LabelStyle.Render("Select an employee and press enter."))
		return
	}
	result := m.projection

	fmt.Fprintf(b, "%s £%s (level %d, %s)\n\n",
		LabelStyle.Render("Current:"),
		result.CurrentState.Salary.StringFixed(0),
		result.CurrentState.Level,
		result.CurrentState.Performance)

	for _, scenario := range forecast.DefaultScenarios {
		projection, ok := result.Projections[scenario]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-13s £%s  (CAGR %.1f%%)", scenario, projection.FinalSalary.StringFixed(0), projection.CAGR*100)
		if projection.CAGR >= 0.04 {
			b.WriteString(PositiveStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render("Median:"), result.Analysis.MedianComparison.CurrentStatus)
	if len(result.Analysis.RiskFactors) > 0 {
		b.WriteString(NegativeStyle.Render("Risks: " + strings.Join(result.Analysis.RiskFactors, ", ")))
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render("Action:"), result.Recommendations.PrimaryAction)
}

func (m Model) renderTimeline(b *strings.Builder) {
	if m.timeline == nil {
		b.WriteString(LabelStyle.Render("Select an employee and press enter."))
		return
	}
	result := m.timeline

	if result.Status == "above_median" {
		b.WriteString(PositiveStyle.Render("Already at or above median"))
		b.WriteString("\n")
		fmt.Fprintf(b, "%s +%.1f%%\n", LabelStyle.Render("Position:"), result.CurrentGapPercent)
		return
	}

	fmt.Fprintf(b, "%s £%s (%.1f%%)\n\n",
		LabelStyle.Render("Gap:"), result.CurrentGapAmount.StringFixed(0), result.CurrentGapPercent)

	for _, name := range []string{convergence.ScenarioNatural, convergence.ScenarioAccelerated, convergence.ScenarioIntervention} {
		scenario, ok := result.Scenarios[name]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "%-13s %.1f years (%s)\n", name, scenario.YearsToMedian, scenario.Feasibility)
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render("Action:"), result.RecommendedAction)
}
