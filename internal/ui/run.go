package ui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Run starts the interactive page and blocks until the user accepts or
// quits. The returned model reports the outcome.
func Run(ctx context.Context, opts RootOptions, progOpts ...tea.ProgramOption) (*RootModel, error) {
	m := NewRootModel(opts)
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	if opts.Width > 0 && opts.Height > 0 {
		progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	m.selector.Close()
	if err != nil {
		return m, fmt.Errorf("run selector: %w", err)
	}
	if fm, ok := final.(*RootModel); ok && fm != nil {
		return fm, nil
	}
	return m, nil
}
