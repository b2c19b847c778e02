package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/bennent-g/websnap/internal/history"
)

// Snapshot is the golden-file shape for a scenario run.
type Snapshot struct {
	Scenario string                      `json:"scenario"`
	History  map[string][]history.Record `json:"history"`
}

// RunWithGolden executes a scenario and compares the history snapshot
// against a golden file at testdata/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc Scenario) {
	t.Helper()

	result, err := Run(sc, t.TempDir())
	if err != nil {
		t.Fatalf("scenario %s failed: %v", sc.Name, err)
	}

	data, err := json.MarshalIndent(Snapshot{
		Scenario: sc.Name,
		History:  result.History,
	}, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	data = append(data, '\n')

	g := goldie.New(t)
	g.Assert(t, sc.Name, data)
}
