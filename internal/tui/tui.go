package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-sticky-notes/internal/logger"
	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/models"
)

// UIOptions configures presentation.
type UIOptions struct {
	BuildInfo models.AppBuildInfo

	// PreviewLines and PreviewWidth bound toolbar previews.
	PreviewLines int
	PreviewWidth int
}

type TUI struct {
	options UIOptions
	logger  *logger.Logger

	programOptions []tea.ProgramOption
}

// New builds the terminal UI. programOptions are passed to every bubbletea
// program it starts.
func New(options UIOptions, log *logger.Logger, programOptions ...tea.ProgramOption) *TUI {
	return &TUI{options: options, logger: log, programOptions: programOptions}
}

// Confirm asks a yes/no question in the terminal. Cancelling ctx counts as
// "no".
func (t *TUI) Confirm(ctx context.Context, title, question string) (bool, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.programOptions...)
	finalModel, err := tea.NewProgram(newPromptModel(title, question), opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("run prompt: %w", err)
	}

	result, ok := finalModel.(promptModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.accepted, nil
}

// Run shows the desk until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context, registry service.NoteRegistry, session Session) error {
	model := newDeskModel(ctx, registry, t.options, session, t.logger)

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, t.programOptions...)
	finalModel, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			t.logger.Info().Str("func", "TUI.Run").Msg("terminal UI stopped by signal")
			return nil
		}
		return fmt.Errorf("run terminal UI: %w", err)
	}

	if _, ok := finalModel.(*deskModel); !ok {
		return tea.ErrProgramKilled
	}
	return nil
}
