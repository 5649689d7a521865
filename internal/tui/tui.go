// Package tui implements csetree, a terminal browser for the resource tree of
// a CSE. It lists the tree discovered below the CSEBase and lets the operator
// inspect, delete and extend resources.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/models"
)

type TUI struct {
	tree service.ResourceTreeService
	info models.AppBuildInfo

	logger *logger.Logger
}

func New(tree service.ResourceTreeService, info models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{tree: tree, info: info, logger: logger}
}

// Run blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	model := newTreeModel(ctx, t.tree, t.info)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		t.logger.Err(err).Msg("tui stopped")
		return err
	}
	return nil
}
