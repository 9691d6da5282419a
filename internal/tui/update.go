package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Update routes messages to the list and runs analyses on selection.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := AppStyle.GetFrameSize()
		m.list.SetSize(msg.Width/2-frameW, msg.Height-frameH-2)
		return m, nil

	case PopulationLoadedMsg:
		m.loading = false
		m.buildEngines(msg.Employees)
		return m, nil

	case ProjectionReadyMsg:
		m.loading = false
		m.projection = msg.Result
		return m, nil

	case ConvergenceReadyMsg:
		m.loading = false
		m.timeline = msg.Result
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			emp, ok := m.selectedEmployee()
			if !ok || m.simulator == nil {
				return m, nil
			}
			m.loading = true
			m.err = nil
			if m.mode == modeConvergence {
				return m, convergeCmd(m.analyzer, emp)
			}
			return m, projectCmd(m.simulator, emp)
		case "tab":
			if m.mode == modeProjection {
				m.mode = modeConvergence
			} else {
				m.mode = modeProjection
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
