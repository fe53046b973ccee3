package main

import (
	"context"
	"fmt"

	"stockprofit/cmd/stockprofit/ui"
	"stockprofit/internal/config"
	"stockprofit/internal/form"
	"stockprofit/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInteractive opens the form and keeps it in sync with the config file.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	ctrl := form.NewController(
		newPredictor(cfg),
		// The form renders its own alert overlay.
		form.AlerterFunc(func(string) {}),
		form.WithInterval(cfg.GetInterval()),
		form.WithCancelPrevious(cfg.Animation.CancelPrevious),
	)

	model := ui.NewModel(ctx, ui.Options{
		Controller:     ctrl,
		Endpoint:       cfg.Endpoint.URL,
		Interval:       cfg.GetInterval(),
		CancelPrevious: cfg.Animation.CancelPrevious,
		RenderMarkdown: cfg.UI.RenderMarkdown,
		Theme:          cfg.UI.Theme,
		NewPredictor:   newPredictor,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	watcher, err := config.NewWatcher(resolveConfigPath(), func(c *config.Config) {
		applyFlagOverrides(cmd, c)
		p.Send(ui.ConfigChangedMsg{Config: c})
	})
	if err != nil {
		logger.Warn("Config watcher unavailable", zap.Error(err))
	} else {
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("Config watcher not started", zap.Error(err))
		}
		defer watcher.Stop()
	}

	logging.Boot("starting interactive form against %s", cfg.Endpoint.URL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive form failed: %w", err)
	}
	return nil
}
