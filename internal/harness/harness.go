package harness

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bennent-g/websnap/internal/dom"
	"github.com/bennent-g/websnap/internal/history"
	"github.com/bennent-g/websnap/internal/route"
	"github.com/bennent-g/websnap/internal/websnap"
)

// Harness timestamps start here and advance 1s per captured record, so
// snapshots are stable across runs.
const (
	baseTimestamp = int64(1700000000000)
	timestampStep = int64(1000)
)

// Result is the outcome of a scenario run.
type Result struct {
	// History is the final store snapshot: composite key → record log.
	History map[string][]history.Record

	// BoundControls is the number of controls carrying change listeners
	// after all steps ran.
	BoundControls int
}

// Run executes a scenario against a fresh document and a temporary
// store, and returns the final history snapshot. dbDir is the directory
// for the scratch database (tests pass t.TempDir()).
func Run(sc Scenario, dbDir string) (Result, error) {
	body, err := dom.ParseString(sc.HTML)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	doc := dom.NewDocument(body)

	clock := fixedClock()
	snap, err := websnap.New(websnap.Config{
		User:             sc.User,
		UILibrary:        sc.UILibrary,
		MaxHistoryLength: sc.MaxHistoryLength,
		DBPath:           filepath.Join(dbDir, sc.Name+".db"),
	}, websnap.WithClock(clock))
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if err := snap.Activate(); err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	defer snap.Close()

	currentRoute := sc.Route
	location := func() route.Location {
		return route.Location{Hash: currentRoute, Path: currentRoute}
	}
	if err := snap.AttachDocument(doc, location); err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	for i, step := range sc.Steps {
		if err := runStep(doc, step, &currentRoute); err != nil {
			return Result{}, fmt.Errorf("scenario %s: step %d: %w", sc.Name, i, err)
		}
	}

	snapshot, err := snap.GetAllHistory(context.Background())
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	return Result{
		History:       snapshot,
		BoundControls: snap.Pipeline().BoundControls(),
	}, nil
}

func runStep(doc *dom.Document, step Step, currentRoute *string) error {
	switch {
	case step.Change != nil:
		el := doc.Root().FindByID(step.Change.Target)
		if el == nil {
			return fmt.Errorf("change: no element with id %q", step.Change.Target)
		}
		doc.Change(el, step.Change.Value)

	case step.Check != nil:
		el := doc.Root().FindByID(step.Check.Target)
		if el == nil {
			return fmt.Errorf("check: no element with id %q", step.Check.Target)
		}
		doc.SetChecked(el, step.Check.Checked)

	case step.Click != nil:
		el := doc.Root().FindByID(step.Click.Target)
		if el == nil {
			return fmt.Errorf("click: no element with id %q", step.Click.Target)
		}
		doc.Click(el)

	case step.Insert != nil:
		parent := doc.Root().FindByID(step.Insert.Parent)
		if parent == nil {
			return fmt.Errorf("insert: no element with id %q", step.Insert.Parent)
		}
		children, err := dom.ParseFragment(step.Insert.HTML)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		for _, child := range children {
			doc.AppendChild(parent, child)
		}

	case step.Navigate != nil:
		*currentRoute = step.Navigate.Route
	}
	return nil
}

// fixedClock returns a deterministic millisecond clock: baseTimestamp on
// the first call, advancing timestampStep per call.
func fixedClock() func() int64 {
	next := baseTimestamp
	return func() int64 {
		ts := next
		next += timestampStep
		return ts
	}
}
