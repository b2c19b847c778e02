package history

import (
	"encoding/json"
	"fmt"
)

// marshalRecords serializes an entry's record log for storage.
// nil serializes as an empty array so stored entries never hold JSON null.
func marshalRecords(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	return string(data), nil
}

// unmarshalEntry decodes a stored records column into an Entry.
func unmarshalEntry(key, recordsJSON string) (Entry, error) {
	var records []Record
	if err := json.Unmarshal([]byte(recordsJSON), &records); err != nil {
		return Entry{}, fmt.Errorf("unmarshal entry %q: %w", key, err)
	}
	if records == nil {
		records = []Record{}
	}
	return Entry{Key: key, Records: records}, nil
}
