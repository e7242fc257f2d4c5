package driver

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

// MemoryStore is an in-memory RecordStore for tests, seeding, and local
// development. It applies the same filter semantics the Neo4j store delegates
// to the database: include labels are a logical OR, exclude labels reject,
// and property filters match by equality or list membership. Records are
// returned in insertion order, which serves as the stable reference order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*types.Record
	index   map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// QueryRecords applies the structural filter over the stored records.
func (s *MemoryStore) QueryRecords(_ context.Context, filters *search.SearchFilters) ([]*types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*types.Record, 0, len(s.records))
	for _, record := range s.records {
		if !matchesFilters(record, filters) {
			continue
		}
		matched = append(matched, record.Clone())
	}
	return matched, nil
}

// GetRecord retrieves a record by uuid.
func (s *MemoryStore) GetRecord(_ context.Context, recordUuid string) (*types.Record, error) {
	if recordUuid == "" {
		return nil, types.ErrEmptyUuid
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[recordUuid]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return s.records[pos].Clone(), nil
}

// UpsertRecord creates or updates a record, assigning a uuid when absent.
// Updates keep the record's original position so the reference order stays
// stable across edits.
func (s *MemoryStore) UpsertRecord(_ context.Context, record *types.Record) (string, error) {
	for _, label := range record.Labels {
		if err := ValidateLabel(label); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Uuid == "" {
		record.Uuid = uuid.New().String()
	}

	stored := record.Clone()
	if pos, ok := s.index[record.Uuid]; ok {
		s.records[pos] = stored
		return record.Uuid, nil
	}

	s.index[record.Uuid] = len(s.records)
	s.records = append(s.records, stored)
	return record.Uuid, nil
}

// DeleteRecord removes a record.
func (s *MemoryStore) DeleteRecord(_ context.Context, recordUuid string) error {
	if recordUuid == "" {
		return types.ErrEmptyUuid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[recordUuid]
	if !ok {
		return ErrRecordNotFound
	}

	s.records = append(s.records[:pos], s.records[pos+1:]...)
	delete(s.index, recordUuid)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].Uuid] = i
	}
	return nil
}

// ListLabels returns the distinct labels present in the store, sorted.
func (s *MemoryStore) ListLabels(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, record := range s.records {
		for _, label := range record.Labels {
			seen[label] = struct{}{}
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// Provider reports the backing store implementation.
func (s *MemoryStore) Provider() StoreProvider {
	return StoreProviderMemory
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}

// matchesFilters implements the store-side filter contract.
func matchesFilters(record *types.Record, filters *search.SearchFilters) bool {
	if filters == nil {
		return true
	}
	if len(filters.IncludeLabels) > 0 && !record.HasAnyLabel(filters.IncludeLabels) {
		return false
	}
	if record.HasAnyLabel(filters.ExcludeLabels) {
		return false
	}
	for key, want := range filters.PropertyFilters {
		if !propertyMatches(record.Properties[key], want) {
			return false
		}
	}
	return true
}

// propertyMatches reports equality against a scalar value or membership in a
// list value.
func propertyMatches(value types.Value, want string) bool {
	switch v := value.(type) {
	case types.StringValue:
		return string(v) == want
	case types.ListValue:
		for _, element := range v {
			if element == want {
				return true
			}
		}
		return false
	default:
		return false
	}
}

var _ RecordStore = (*MemoryStore)(nil)
