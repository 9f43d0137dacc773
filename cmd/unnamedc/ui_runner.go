package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aern-do/unnamedc/internal/driver"
	"github.com/Aern-do/unnamedc/internal/ui"
)

type tokenizeOutcome struct {
	result *driver.Result
	err    error
}

// runTokenizeWithUI runs the driver in the background and shows its
// progress events until it finishes.
func runTokenizeWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		opts.Progress = func(ev driver.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		}
		res, err := driver.TokenizeFiles(ctx, files, opts)
		outcomeCh <- tokenizeOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Interrupted(final) {
		cancel()
	}
	// UI больше не читает события, но драйвер может ещё писать
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
