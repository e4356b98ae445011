package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"adaeze/payTerm/internal/config"
	"adaeze/payTerm/internal/utils"
	"adaeze/payTerm/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			logPath = filepath.Join(homeDir, ".payterm", "payterm.log")
		}
	}

	logger, err := utils.NewLogger(logPath, config.IsDebugEnabled())
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := views.NewAppModel(cfg, logger)
	if err != nil {
		fmt.Printf("Error initializing application: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
