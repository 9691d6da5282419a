package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/payequity/equisim/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: equisim-tui <population-file>")
		os.Exit(1)
	}
	populationPath := os.Args[1]

	if _, err := os.Stat(populationPath); os.IsNotExist(err) {
		fmt.Printf("Error: population file not found: %s\n", populationPath)
		os.Exit(1)
	}

	model := tui.NewModel(populationPath)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
