// Package harness runs end-to-end capture scenarios: a scenario describes
// a page, a sequence of user interactions, and the session configuration;
// the harness builds the DOM, drives the capture pipeline, and snapshots
// the resulting history store for golden comparison.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one end-to-end capture test.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// User is the session user. Required: a scenario without a user
	// cannot activate capture.
	User string `yaml:"user"`

	// UILibrary selects the identification strategy variant.
	// Empty uses the session default (elementplus).
	UILibrary string `yaml:"uiLibrary,omitempty"`

	// MaxHistoryLength caps records per element (0 = unlimited).
	MaxHistoryLength int `yaml:"maxHistoryLength,omitempty"`

	// Route is the route active when the scenario starts, e.g. "#/login".
	Route string `yaml:"route"`

	// HTML is the page markup the document is built from.
	HTML string `yaml:"html"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`
}

// Step is one scenario action. Exactly one field must be set.
type Step struct {
	// Change sets a form control's value and fires its change event.
	Change *ChangeStep `yaml:"change,omitempty"`

	// Check toggles a checkbox/radio and fires its change event.
	Check *CheckStep `yaml:"check,omitempty"`

	// Click dispatches a document-level click on an element.
	Click *ClickStep `yaml:"click,omitempty"`

	// Insert parses markup and appends it under a parent element,
	// triggering the pipeline's mutation rescan.
	Insert *InsertStep `yaml:"insert,omitempty"`

	// Navigate switches the current route for subsequent captures.
	Navigate *NavigateStep `yaml:"navigate,omitempty"`
}

// ChangeStep sets a control's value.
type ChangeStep struct {
	Target string `yaml:"target"` // element id
	Value  string `yaml:"value"`
}

// CheckStep toggles a checkbox or radio.
type CheckStep struct {
	Target  string `yaml:"target"` // element id
	Checked bool   `yaml:"checked"`
}

// ClickStep clicks an element.
type ClickStep struct {
	Target string `yaml:"target"` // element id
}

// InsertStep inserts parsed markup under a parent.
type InsertStep struct {
	Parent string `yaml:"parent"` // element id
	HTML   string `yaml:"html"`
}

// NavigateStep changes the current route.
type NavigateStep struct {
	Route string `yaml:"route"`
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("load scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("load scenario %s: %w", path, err)
	}

	if err := sc.validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// LoadScenarios reads every *.yaml scenario in a directory, sorted by
// file name for deterministic test ordering.
func LoadScenarios(dir string) ([]Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]Scenario, 0, len(paths))
	for _, path := range paths {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func (sc Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if sc.User == "" {
		return fmt.Errorf("missing user")
	}
	if sc.HTML == "" {
		return fmt.Errorf("missing html")
	}
	for i, step := range sc.Steps {
		set := 0
		if step.Change != nil {
			set++
		}
		if step.Check != nil {
			set++
		}
		if step.Click != nil {
			set++
		}
		if step.Insert != nil {
			set++
		}
		if step.Navigate != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("step %d: exactly one action must be set", i)
		}
	}
	return nil
}
