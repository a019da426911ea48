package catalog

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"
)

//go:embed entries.csv
var entriesCSV string

// Entry is one land-use key's display metadata: its default layer, a
// short and a long human-readable description. Consumed by C6 to
// derive auto-attributes (layer, description) for Insert operations.
type Entry struct {
	Key             string
	Layer           string
	Description     string
	LongDescription string
}

// Catalog is the read-only, build-time-embedded map from land-use key
// to display Entry.
type Catalog struct {
	entries map[string]Entry
}

// Load parses the embedded catalog. It never fails on the built-in
// data; the error return exists for callers that load an
// operator-supplied replacement via LoadFromCSV.
func Load() (*Catalog, error) {
	return LoadFromCSV(entriesCSV)
}

// LoadFromCSV parses a catalog in the same key,layer,description,longDescription
// shape as the embedded default — used when an operator supplies their
// own catalog file (spec §7 Adapter errors: a malformed catalog must
// surface as an error, never partially load).
func LoadFromCSV(data string) (*Catalog, error) {
	r := csv.NewReader(strings.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing land-use catalog: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("land-use catalog is empty")
	}

	entries := make(map[string]Entry, len(records)-1)
	for _, row := range records[1:] { // skip header
		if len(row) != 4 {
			return nil, fmt.Errorf("land-use catalog row has %d fields, want 4: %v", len(row), row)
		}
		entries[row[0]] = Entry{Key: row[0], Layer: row[1], Description: row[2], LongDescription: row[3]}
	}
	return &Catalog{entries: entries}, nil
}

// Lookup returns the Entry for a key and whether it was found — an
// unknown key is an Unknown-Reference condition per spec §7, handled by
// the caller (skip-with-warning, not a core error).
func (c *Catalog) Lookup(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// LayerOf returns the default layer for a key, or "" if the key is
// unknown.
func (c *Catalog) LayerOf(key string) string {
	return c.entries[key].Layer
}
