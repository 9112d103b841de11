// Package store holds the in-memory traffic record list.
//
// Records are loaded once at startup from a JSON file; a missing or malformed
// file substitutes a fixed two-record default set. The list is effectively
// immutable between loads.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/weathall1/trafficpulse/internal/metrics"
)

// Record is one traffic condition at a place.
type Record struct {
	Location string `json:"location"`
	Event    string `json:"event"`
}

// DefaultRecords returns the fallback record set used when the data file is
// missing or malformed.
func DefaultRecords() []Record {
	return []Record{
		{Location: "台北市中正區", Event: "交通順暢"},
		{Location: "新北市板橋區", Event: "輕微塞車"},
	}
}

// Store owns the current record list. Safe for concurrent reads; Load may be
// re-invoked to replace the list wholesale.
type Store struct {
	mu      sync.RWMutex
	path    string
	records []Record
}

// New creates a store reading from the given JSON file path. Call Load before
// serving.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the JSON file and replaces the stored list with its records.
// A missing file or parse failure substitutes the default records; neither is
// an error to the caller.
func (s *Store) Load() {
	records, err := readRecords(s.path)
	if err != nil {
		slog.Warn("Falling back to default traffic records", "path", s.path, "error", err)
		metrics.StoreLoadFallbacksTotal.Inc()
		records = DefaultRecords()
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	metrics.StoreRecords.Set(float64(len(records)))
	slog.Info("Traffic records loaded", "count", len(records))
}

func readRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// All returns a copy of the current record list in load order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records
}

// First returns the first record and true, or the zero record and false when
// the store is empty.
func (s *Store) First() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[0], true
}

// Count returns the number of loaded records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
