package history

import (
	"context"
	"database/sql"
	"fmt"
)

// Append adds a record to the entry for key, creating the entry lazily on
// first use.
//
// With a per-element cap configured, an append that would push the count
// of records sharing this element past the cap fails with CapacityError
// and performs no write. The whole read-modify-write runs inside one
// transaction, so appends racing on the same key serialize rather than
// overwrite each other.
//
// Returns the appended record, including its assigned timestamp.
func (s *Store) Append(ctx context.Context, key, element, value string, kind Kind) (Record, error) {
	if kind == "" {
		kind = KindForm
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("append: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	entry, _, err := loadEntry(ctx, tx, key)
	if err != nil {
		return Record{}, fmt.Errorf("append: %w", err)
	}
	entry.Key = key

	if s.maxPerElement > 0 {
		count := 0
		for _, r := range entry.Records {
			if r.Element == element {
				count++
			}
		}
		if count >= s.maxPerElement {
			return Record{}, &CapacityError{Key: key, Element: element, Limit: s.maxPerElement}
		}
	}

	record := Record{
		Element:   element,
		Value:     value,
		Timestamp: s.now(),
		Kind:      kind,
	}
	entry.Records = append(entry.Records, record)

	if err := putEntry(ctx, tx, entry); err != nil {
		return Record{}, fmt.Errorf("append: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("append: commit: %w", err)
	}

	return record, nil
}

// DeleteElement removes every record matching element from the entry for
// key. If the filtered entry is empty the entry itself is removed;
// otherwise it is rewritten. No-op if the key has no entry.
func (s *Store) DeleteElement(ctx context.Context, key, element string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete element: begin tx: %w", err)
	}
	defer tx.Rollback()

	entry, found, err := loadEntry(ctx, tx, key)
	if err != nil {
		return fmt.Errorf("delete element: %w", err)
	}
	if !found {
		return nil
	}

	kept := entry.Records[:0]
	for _, r := range entry.Records {
		if r.Element != element {
			kept = append(kept, r)
		}
	}
	entry.Records = kept

	if len(entry.Records) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete element: drop entry %q: %w", key, err)
		}
	} else if err := putEntry(ctx, tx, entry); err != nil {
		return fmt.Errorf("delete element: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete element: commit: %w", err)
	}
	return nil
}

// Clear removes every entry from the store.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// putEntry upserts an entry inside the given transaction.
func putEntry(ctx context.Context, tx execer, entry Entry) error {
	recordsJSON, err := marshalRecords(entry.Records)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (key, records)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET records = excluded.records
	`, entry.Key, recordsJSON)
	if err != nil {
		return fmt.Errorf("put entry %q: %w", entry.Key, err)
	}
	return nil
}

// execer abstracts *sql.DB and *sql.Tx for shared write helpers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
