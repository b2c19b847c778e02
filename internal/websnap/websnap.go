// Package websnap ties configuration, capture and storage into one
// explicit session object.
//
// Snap replaces the process-wide singleton of typical form-history
// libraries: it is constructed once at startup, activated explicitly, and
// passed to every capture and query call site. History operations on a
// session that was never activated (no user configured) fail fast with
// ErrNotActivated rather than silently doing nothing.
package websnap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/bennent-g/websnap/internal/capture"
	"github.com/bennent-g/websnap/internal/dom"
	"github.com/bennent-g/websnap/internal/history"
	"github.com/bennent-g/websnap/internal/query"
	"github.com/bennent-g/websnap/internal/route"
	"github.com/bennent-g/websnap/internal/strategy"
)

// ErrNotActivated is returned by every history operation invoked before
// Activate succeeded (typically because no user was configured).
var ErrNotActivated = errors.New("websnap: session not activated: configure a user and call Activate")

// Snap is one capture/query session for a single user.
type Snap struct {
	cfg       Config
	sessionID string
	strat     strategy.Strategy
	logger    *log.Logger

	store    *history.Store
	pipeline *capture.Pipeline

	// clock overrides record timestamps; nil uses the wall clock.
	clock func() int64
}

// Option customizes a Snap at construction time.
type Option func(*Snap)

// WithLogger directs diagnostic traces to the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Snap) { s.logger = logger }
}

// WithClock fixes the record timestamp source, in Unix milliseconds.
// Used by tests and the scenario harness for deterministic records.
func WithClock(clock func() int64) Option {
	return func(s *Snap) { s.clock = clock }
}

// New creates a session from the given config. Defaults are applied and
// the config validated; the persistence backend is not touched until
// Activate.
func New(cfg Config, opts ...Option) (*Snap, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("websnap: %w", err)
	}

	s := &Snap{
		cfg:       cfg,
		sessionID: uuid.Must(uuid.NewV7()).String(),
		strat:     strategy.ForLibrary(cfg.UILibrary),
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SessionID returns the session's UUIDv7 identifier, used to correlate
// diagnostic traces.
func (s *Snap) SessionID() string { return s.sessionID }

// Config returns the effective (defaulted) configuration.
func (s *Snap) Config() Config { return s.cfg }

// Activate opens the persistence backend. Requires a configured user;
// without one the session stays inert and every history operation
// returns ErrNotActivated.
func (s *Snap) Activate() error {
	if s.cfg.User == "" {
		return ErrNotActivated
	}
	if s.store != nil {
		return nil
	}

	store, err := history.Open(s.cfg.DBPath, history.Options{
		MaxRecordsPerElement: s.cfg.MaxHistoryLength,
		Clock:                s.clock,
	})
	if err != nil {
		return fmt.Errorf("websnap: activate: %w", err)
	}
	s.store = store
	return nil
}

// Close releases the persistence backend. The session can not be
// reactivated afterwards.
func (s *Snap) Close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

// AttachDocument binds a capture pipeline to the given document using the
// configured strategy and route provider. Requires an activated session.
func (s *Snap) AttachDocument(doc *dom.Document, location func() route.Location) error {
	if s.store == nil {
		return ErrNotActivated
	}

	s.pipeline = capture.New(doc, s.strat, route.NewProvider(s.cfg.RouteMode, location), s, s.logger)
	s.pipeline.Bind()
	return nil
}

// Pipeline returns the bound capture pipeline, or nil before
// AttachDocument.
func (s *Snap) Pipeline() *capture.Pipeline { return s.pipeline }

// Append records one interaction tuple under the session user.
// Implements capture.Appender; also the public equivalent of the original
// addElementHistory API. A capacity violation surfaces as
// history.CapacityError with no state change.
func (s *Snap) Append(ctx context.Context, routePath, element, value string, kind history.Kind) (history.Record, error) {
	if s.store == nil {
		return history.Record{}, ErrNotActivated
	}
	key := history.Key(s.cfg.User, route.StripQuery(routePath))
	return s.store.Append(ctx, key, element, value, kind)
}

// GetElementHistory returns the records for a "route@element" parameter,
// in capture order. Backend read failures degrade to an empty result with
// a diagnostic trace so history lookups stay non-fatal to the host page.
func (s *Snap) GetElementHistory(ctx context.Context, param string) ([]history.Record, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	routePath, element := history.SplitParam(param)
	records, err := s.store.ElementRecords(ctx, history.Key(s.cfg.User, routePath), element)
	if err != nil {
		s.logger.Printf("websnap[%s]: element history read failed, returning empty: %v", s.sessionID, err)
		return []history.Record{}, nil
	}
	return records, nil
}

// GetAllHistory returns a snapshot of every stored entry keyed by
// composite key. Backend read failures degrade to an empty snapshot with
// a diagnostic trace.
func (s *Snap) GetAllHistory(ctx context.Context) (map[string][]history.Record, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	snapshot, err := s.store.All(ctx)
	if err != nil {
		s.logger.Printf("websnap[%s]: history snapshot failed, returning empty: %v", s.sessionID, err)
		return map[string][]history.Record{}, nil
	}
	return snapshot, nil
}

// GetStoreKeys returns every composite key. Backend failures degrade to
// an empty result with a diagnostic trace.
func (s *Snap) GetStoreKeys(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	keys, err := s.store.Keys(ctx)
	if err != nil {
		s.logger.Printf("websnap[%s]: key listing failed, returning empty: %v", s.sessionID, err)
		return []string{}, nil
	}
	return keys, nil
}

// GetStoreKeysInfo returns every composite key split into user and route.
func (s *Snap) GetStoreKeysInfo(ctx context.Context) ([]history.KeyInfo, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	infos, err := s.store.KeysInfo(ctx)
	if err != nil {
		s.logger.Printf("websnap[%s]: key info listing failed, returning empty: %v", s.sessionID, err)
		return []history.KeyInfo{}, nil
	}
	return infos, nil
}

// GetStoreKeysGroupedByUser returns stored routes grouped by user.
func (s *Snap) GetStoreKeysGroupedByUser(ctx context.Context) (map[string][]string, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	grouped, err := s.store.KeysByUser(ctx)
	if err != nil {
		s.logger.Printf("websnap[%s]: grouped key listing failed, returning empty: %v", s.sessionID, err)
		return map[string][]string{}, nil
	}
	return grouped, nil
}

// GetUserRoutes returns the routes stored for one user.
func (s *Snap) GetUserRoutes(ctx context.Context, user string) ([]string, error) {
	if s.store == nil {
		return nil, ErrNotActivated
	}
	routes, err := s.store.UserRoutes(ctx, user)
	if err != nil {
		s.logger.Printf("websnap[%s]: user route listing failed, returning empty: %v", s.sessionID, err)
		return []string{}, nil
	}
	return routes, nil
}

// GetPaginatedRecords returns one sorted page of the entry stored under
// key. Unlike the aggregate reads, pagination propagates backend errors:
// its callers are inspection surfaces, not the capture path.
func (s *Snap) GetPaginatedRecords(ctx context.Context, key string, opts query.Options) (query.Result, error) {
	if s.store == nil {
		return query.Result{}, ErrNotActivated
	}
	entry, _, err := s.store.Entry(ctx, key)
	if err != nil {
		return query.Result{}, fmt.Errorf("websnap: paginated records: %w", err)
	}
	return query.Paginate(entry.Records, opts), nil
}

// GetFilteredPaginatedRecords filters the entry stored under key, then
// paginates the survivors.
func (s *Snap) GetFilteredPaginatedRecords(ctx context.Context, key string, filters query.Filters, opts query.Options) (query.Result, error) {
	if s.store == nil {
		return query.Result{}, ErrNotActivated
	}
	entry, _, err := s.store.Entry(ctx, key)
	if err != nil {
		return query.Result{}, fmt.Errorf("websnap: filtered records: %w", err)
	}
	return query.FilterAndPaginate(entry.Records, filters, opts), nil
}

// DeleteElementHistory removes every record for a "route@element"
// parameter. Removes the whole entry when its last record goes.
// Targeted deletes propagate backend errors.
func (s *Snap) DeleteElementHistory(ctx context.Context, param string) error {
	if s.store == nil {
		return ErrNotActivated
	}
	routePath, element := history.SplitParam(param)
	return s.store.DeleteElement(ctx, history.Key(s.cfg.User, routePath), element)
}

// ClearAllHistory removes every entry from the store.
func (s *Snap) ClearAllHistory(ctx context.Context) error {
	if s.store == nil {
		return ErrNotActivated
	}
	return s.store.Clear(ctx)
}
