// Package capture binds to form controls on a document and turns their
// change and click events into history appends.
//
// The pipeline is a small state machine over DOM readiness: Bind attaches
// change listeners to every form control currently present, installs a
// structural observer over the subtree, and registers a document-level
// click listener. Every child-list mutation triggers a rescan that binds
// controls not yet bound; binding is idempotent because bound controls
// are tracked in an external set keyed by node identity (never a marker
// stashed on the node itself).
//
// Capture-path failures are swallowed with a diagnostic trace: a single
// malformed element or a failed append must never break page
// interactivity. Store-level errors still reach callers that use the
// history API directly.
package capture

import (
	"context"
	"io"
	"log"

	"github.com/bennent-g/websnap/internal/dom"
	"github.com/bennent-g/websnap/internal/history"
	"github.com/bennent-g/websnap/internal/route"
	"github.com/bennent-g/websnap/internal/strategy"
)

// Appender receives captured interaction tuples. Implemented by the
// websnap session, which scopes them to the configured user.
type Appender interface {
	Append(ctx context.Context, routePath, element, value string, kind history.Kind) (history.Record, error)
}

// Pipeline captures form interactions on one document.
type Pipeline struct {
	doc    *dom.Document
	strat  strategy.Strategy
	route  route.Provider
	sink   Appender
	logger *log.Logger

	// bound tracks controls that already carry a change listener,
	// keyed by node identity.
	bound map[*dom.Element]struct{}
}

// New creates an unbound pipeline. logger may be nil to discard
// diagnostics.
func New(doc *dom.Document, strat strategy.Strategy, provider route.Provider, sink Appender, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Pipeline{
		doc:    doc,
		strat:  strat,
		route:  provider,
		sink:   sink,
		logger: logger,
		bound:  map[*dom.Element]struct{}{},
	}
}

// Bind attaches the pipeline to its document: binds every present form
// control, installs the structural observer, and registers the click
// listener. After Bind the pipeline is in its observing state and newly
// inserted controls are picked up automatically.
func (p *Pipeline) Bind() {
	p.doc.Observe(p.rescan)
	p.doc.OnClick(p.handleClick)
	p.rescan()
}

// rescan binds change listeners to any form controls not yet bound.
// O(number of controls); mutation batches are coalesced by the host, not
// here. Idempotent: a control is bound exactly once.
func (p *Pipeline) rescan() {
	for _, el := range p.doc.Root().FormControls() {
		if _, ok := p.bound[el]; ok {
			continue
		}
		p.bound[el] = struct{}{}
		p.doc.OnChange(el, p.handleChange)
	}
}

// BoundControls reports how many controls currently carry a change
// listener.
func (p *Pipeline) BoundControls() int {
	return len(p.bound)
}

// handleChange resolves the changed control's identity and value and
// forwards a form record. Controls without a resolvable identifier are
// skipped.
func (p *Pipeline) handleChange(ev *dom.Event) {
	element := p.strat.ElementID(ev.Target)
	if element == "" {
		return
	}
	value := p.strat.Value(ev.Target)

	if _, err := p.sink.Append(context.Background(), p.route(), element, value, history.KindForm); err != nil {
		p.logger.Printf("websnap: change capture for %q dropped: %v", element, err)
	}
}

// handleClick applies the strategy's click exclusion rules and forwards a
// click record with value "true" when an identifier qualifies.
//
// Click and change capture are independent: a checkbox click legitimately
// produces both a click and a change record.
func (p *Pipeline) handleClick(ev *dom.Event) {
	id, ok := p.strat.ClickID(ev)
	if !ok {
		return
	}

	if _, err := p.sink.Append(context.Background(), p.route(), id, "true", history.KindClick); err != nil {
		p.logger.Printf("websnap: click capture for %q dropped: %v", id, err)
	}
}
