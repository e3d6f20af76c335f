package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vitrine/internal/driver"
	"vitrine/internal/renderpipeline"
	"vitrine/internal/ui"
)

type renderOutcome struct {
	result *driver.DirResult
	err    error
}

// runRenderDirWithUI runs RenderDir behind a Bubble Tea progress view.
// The render runs in its own goroutine feeding events into the model.
func runRenderDirWithUI(ctx context.Context, title string, files []string, req driver.DirRequest) (*driver.DirResult, error) {
	events := make(chan renderpipeline.Event, 256)
	outcomeCh := make(chan renderOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = renderpipeline.ChannelSink{Ch: events}
		res, err := driver.RenderDir(ctx, reqCopy)
		outcomeCh <- renderOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
