package history

import (
	"context"
	"fmt"
	"sort"
)

// Entry returns the full entry for a composite key.
// Returns found=false (not an error) when the key has no entry.
func (s *Store) Entry(ctx context.Context, key string) (Entry, bool, error) {
	return loadEntry(ctx, s.db, key)
}

// ElementRecords returns all records for key matching element, in stored
// (capture) order. Returns an empty slice when the key or the element has
// no records.
func (s *Store) ElementRecords(ctx context.Context, key, element string) ([]Record, error) {
	entry, found, err := loadEntry(ctx, s.db, key)
	if err != nil {
		return nil, fmt.Errorf("element records: %w", err)
	}

	records := []Record{}
	if !found {
		return records, nil
	}
	for _, r := range entry.Records {
		if r.Element == element {
			records = append(records, r)
		}
	}
	return records, nil
}

// Keys returns every composite key currently present. Backend iteration
// order; callers must not rely on any particular ordering.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("keys: scan: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("keys: iterate: %w", err)
	}
	return keys, nil
}

// KeysInfo returns every composite key split into user and route.
func (s *Store) KeysInfo(ctx context.Context) ([]KeyInfo, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]KeyInfo, len(keys))
	for i, key := range keys {
		infos[i] = SplitKey(key)
	}
	return infos, nil
}

// KeysByUser returns the stored routes grouped by the exact user part of
// each composite key.
func (s *Store) KeysByUser(ctx context.Context) (map[string][]string, error) {
	infos, err := s.KeysInfo(ctx)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]string{}
	for _, info := range infos {
		grouped[info.User] = append(grouped[info.User], info.Route)
	}
	return grouped, nil
}

// UserRoutes returns the routes stored for one user.
func (s *Store) UserRoutes(ctx context.Context, user string) ([]string, error) {
	infos, err := s.KeysInfo(ctx)
	if err != nil {
		return nil, err
	}

	routes := []string{}
	for _, info := range infos {
		if info.User == user {
			routes = append(routes, info.Route)
		}
	}
	return routes, nil
}

// All returns a full snapshot of the store: every composite key mapped to
// its record log. Keys are iterated in sorted order for determinism, but
// callers must treat the mapping as unordered.
func (s *Store) All(ctx context.Context) (map[string][]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, records FROM entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("all: %w", err)
	}
	defer rows.Close()

	snapshot := map[string][]Record{}
	for rows.Next() {
		var key, recordsJSON string
		if err := rows.Scan(&key, &recordsJSON); err != nil {
			return nil, fmt.Errorf("all: scan: %w", err)
		}
		entry, err := unmarshalEntry(key, recordsJSON)
		if err != nil {
			return nil, fmt.Errorf("all: %w", err)
		}
		snapshot[key] = entry.Records
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all: iterate: %w", err)
	}
	return snapshot, nil
}

// SortedKeys returns the snapshot's keys in lexical order.
// Convenience for deterministic rendering of All results.
func SortedKeys(snapshot map[string][]Record) []string {
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
