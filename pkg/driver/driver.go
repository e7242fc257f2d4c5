package driver

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

var (
	// ErrRecordNotFound is returned when a record lookup finds nothing.
	ErrRecordNotFound = errors.New("record not found")
)

// StoreProvider identifies the backing store implementation.
type StoreProvider string

const (
	StoreProviderNeo4j  StoreProvider = "neo4j"
	StoreProviderMemory StoreProvider = "memory"
)

// RecordStore is the full store contract: the query capability the search
// engine consumes plus the record CRUD the rest of the service exposes.
// Consumers should depend on the smallest interface that meets their needs;
// the search engine only sees search.RecordStore.
type RecordStore interface {
	search.RecordStore

	// GetRecord retrieves a single record by uuid.
	GetRecord(ctx context.Context, uuid string) (*types.Record, error)

	// UpsertRecord creates or updates a record, assigning a uuid when the
	// record has none, and returns the record's uuid.
	UpsertRecord(ctx context.Context, record *types.Record) (string, error)

	// DeleteRecord removes a record and its relationships.
	DeleteRecord(ctx context.Context, uuid string) error

	// ListLabels returns the distinct labels present in the store.
	ListLabels(ctx context.Context) ([]string, error)

	// Provider reports the backing store implementation.
	Provider() StoreProvider

	// Close releases all resources held by the store.
	Close(ctx context.Context) error
}

// labelPattern restricts labels to identifier characters. Labels are the one
// identifier Cypher cannot bind as a parameter, so anything outside this
// pattern is rejected before it can reach query text.
var labelPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateLabel rejects labels that cannot be safely used as Cypher
// identifiers.
func ValidateLabel(label string) error {
	if !labelPattern.MatchString(label) {
		return fmt.Errorf("invalid label %q", label)
	}
	return nil
}
