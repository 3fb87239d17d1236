package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/haydenkz/nvim-wingman/internal/config"
	"github.com/haydenkz/nvim-wingman/internal/history"
	"github.com/haydenkz/nvim-wingman/internal/llm"
	"github.com/haydenkz/nvim-wingman/internal/suggest"
	"go.uber.org/zap"
)

// Run starts the terminal host: it builds the backend client and lifecycle
// controller around the model and blocks until the user quits. When path is
// non-empty the buffer is loaded from it on start and written back on exit.
func Run(cfg config.Config, store *history.Store, logger *zap.Logger, path string) error {
	var lines []string
	filetype := "text"

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err == nil {
			lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		}
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			filetype = ext
		}
	}

	model := NewModel(lines, filetype, cfg.AcceptKey, logger)

	client := llm.New(cfg.BackendKind(), cfg.ClientOptions(), logger)
	controller := suggest.NewController(model, client, store, logger, suggest.Options{
		Debounce:         cfg.DebounceMs,
		TriggerThreshold: cfg.TriggerThreshold,
		ContextLines:     cfg.ContextLines,
		AutoTrigger:      cfg.AutoTrigger,
		ShowSuggestions:  cfg.ShowSuggestions,
	})
	model.SetHooks(controller.Hooks())

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
		model.Notify(warning)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if path != "" {
		if err := os.WriteFile(path, []byte(model.ContentString()+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}
