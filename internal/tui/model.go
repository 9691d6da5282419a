// Package tui is an interactive browser over per-employee salary
// projections and convergence timelines.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/payequity/equisim/internal/convergence"
	"github.com/payequity/equisim/internal/domain"
	"github.com/payequity/equisim/internal/forecast"
	"github.com/payequity/equisim/internal/population"
	"github.com/payequity/equisim/internal/progression"
)

// viewMode selects what the detail pane shows.
type viewMode int

const (
	modeProjection viewMode = iota
	modeConvergence
)

// Messages produced by background commands.
type (
	// PopulationLoadedMsg carries the parsed snapshot.
	PopulationLoadedMsg struct {
		Employees []domain.Employee
	}

	// ProjectionReadyMsg carries one employee's projection result.
	ProjectionReadyMsg struct {
		Result *progression.Result
	}

	// ConvergenceReadyMsg carries one employee's convergence timeline.
	ConvergenceReadyMsg struct {
		Result *convergence.TimelineResult
	}

	// ErrorMsg carries any background failure.
	ErrorMsg struct {
		Err error
	}
)

// employeeItem adapts an employee record to the list component.
type employeeItem struct {
	employee domain.Employee
}

func (i employeeItem) Title() string {
	return fmt.Sprintf("Employee %d", i.employee.EmployeeID)
}

func (i employeeItem) Description() string {
	return fmt.Sprintf("Level %d · £%s · %s", i.employee.Level, i.employee.Salary.StringFixed(0), i.employee.Performance)
}

func (i employeeItem) FilterValue() string {
	return fmt.Sprintf("%d", i.employee.EmployeeID)
}

// Model is the application state.
type Model struct {
	populationPath string

	employees  []domain.Employee
	simulator  *progression.Simulator
	analyzer   *convergence.Analyzer
	list       list.Model
	mode       viewMode
	projection *progression.Result
	timeline   *convergence.TimelineResult

	width  int
	height int

	loading bool
	err     error
}

// NewModel creates the browser model for a population snapshot file.
func NewModel(populationPath string) Model {
	delegate := list.NewDefaultDelegate()
	employeeList := list.New(nil, delegate, 0, 0)
	employeeList.Title = "Population"
	employeeList.SetShowStatusBar(false)

	return Model{
		populationPath: populationPath,
		list:           employeeList,
		loading:        true,
		width:          80,
		height:         24,
	}
}

// Init kicks off population loading.
func (m Model) Init() tea.Cmd {
	return loadPopulationCmd(m.populationPath)
}

func loadPopulationCmd(path string) tea.Cmd {
	return func() tea.Msg {
		employees, err := population.Load(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PopulationLoadedMsg{Employees: employees}
	}
}

func projectCmd(simulator *progression.Simulator, emp domain.Employee) tea.Cmd {
	return func() tea.Msg {
		result, err := simulator.Project(emp, 0, nil, true)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProjectionReadyMsg{Result: result}
	}
}

func convergeCmd(analyzer *convergence.Analyzer, emp domain.Employee) tea.Cmd {
	return func() tea.Msg {
		result, err := analyzer.AnalyzeTimeline(emp, 0)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConvergenceReadyMsg{Result: result}
	}
}

// selectedEmployee returns the employee under the cursor.
func (m Model) selectedEmployee() (domain.Employee, bool) {
	item, ok := m.list.SelectedItem().(employeeItem)
	if !ok {
		return domain.Employee{}, false
	}
	return item.employee, true
}

// buildEngines wires the analysis engines once the snapshot is loaded.
func (m *Model) buildEngines(employees []domain.Employee) {
	engine := forecast.NewEngine()
	m.employees = employees
	m.simulator = progression.NewSimulator(employees, engine)
	m.analyzer = convergence.NewAnalyzer(employees, engine)

	items := make([]list.Item, len(employees))
	for i, emp := range employees {
		items[i] = employeeItem{employee: emp}
	}
	m.list.SetItems(items)
}
