package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"traitgen/internal/driver"
	"traitgen/internal/shape"
	"traitgen/internal/ui"
)

type planOutcome struct {
	results []driver.Result
	err     error
}

// runPlanWithUI runs the planner behind a live progress display. Workers
// publish completion events onto a channel; the Bubble Tea model consumes
// them until the planner closes the channel.
func runPlanWithUI(ctx context.Context, title string, in *shape.Interner, shapes []*shape.TypeShape, opts driver.Options) ([]driver.Result, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan planOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(r driver.Result) {
			events <- ui.Event{Type: r.Shape.Ref.String(), Status: resultStatus(r)}
		}
		results, err := driver.PlanAll(ctx, in, shapes, optsCopy)
		outcomeCh <- planOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, typeNames(shapes), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func resultStatus(r driver.Result) ui.Status {
	switch {
	case refused(r.Plan):
		return ui.StatusRefused
	case r.CacheHit:
		return ui.StatusCached
	case r.Bag != nil && r.Bag.HasWarnings():
		return ui.StatusWarned
	default:
		return ui.StatusPlanned
	}
}
