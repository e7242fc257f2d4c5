package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/types"
)

// Neo4jStore implements RecordStore against a Neo4j database.
type Neo4jStore struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore creates a new Neo4j record store.
func NewNeo4jStore(uri, username, password, database string) (*Neo4jStore, error) {
	client, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jStore{
		client:   client,
		database: database,
	}, nil
}

// QueryRecords executes the structural filter and returns matching records in
// a deterministic reference order.
func (s *Neo4jStore) QueryRecords(ctx context.Context, filters *search.SearchFilters) ([]*types.Record, error) {
	query, params := BuildRecordQuery(filters)

	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	dbRecords := result.([]*db.Record)
	records := make([]*types.Record, 0, len(dbRecords))
	for _, dbRecord := range dbRecords {
		nodeValue, found := dbRecord.Get("n")
		if !found {
			continue
		}
		node, ok := nodeValue.(dbtype.Node)
		if !ok {
			continue
		}
		records = append(records, recordFromDBNode(node))
	}

	return records, nil
}

// GetRecord retrieves a record by uuid.
func (s *Neo4jStore) GetRecord(ctx context.Context, recordUuid string) (*types.Record, error) {
	if recordUuid == "" {
		return nil, types.ErrEmptyUuid
	}

	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			MATCH (n {uuid: $uuid})
			RETURN n
			LIMIT 1
		`, map[string]any{"uuid": recordUuid})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	dbRecords := result.([]*db.Record)
	if len(dbRecords) == 0 {
		return nil, ErrRecordNotFound
	}

	nodeValue, found := dbRecords[0].Get("n")
	if !found {
		return nil, ErrRecordNotFound
	}
	node, ok := nodeValue.(dbtype.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected type for record: got %T, expected dbtype.Node", nodeValue)
	}

	return recordFromDBNode(node), nil
}

// UpsertRecord creates or updates a record, assigning a uuid when absent.
// Labels cannot be bound as parameters in Cypher, so they are validated
// against the identifier pattern and quoted; property values go through
// parameters as usual.
func (s *Neo4jStore) UpsertRecord(ctx context.Context, record *types.Record) (string, error) {
	if record == nil {
		return "", errors.New("cannot upsert nil record")
	}
	for _, label := range record.Labels {
		if err := ValidateLabel(label); err != nil {
			return "", err
		}
	}
	if record.Uuid == "" {
		record.Uuid = uuid.New().String()
	}

	var labelClause string
	if len(record.Labels) > 0 {
		quoted := make([]string, len(record.Labels))
		for i, label := range record.Labels {
			quoted[i] = "`" + label + "`"
		}
		labelClause = "SET n:" + strings.Join(quoted, ":")
	}

	query := fmt.Sprintf(`
		MERGE (n {uuid: $uuid})
		%s
		SET n += $properties
	`, labelClause)

	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, map[string]any{
			"uuid":       record.Uuid,
			"properties": types.EncodeProperties(record.Properties),
		})
	})
	if err != nil {
		return "", err
	}

	return record.Uuid, nil
}

// DeleteRecord removes a record and its relationships.
func (s *Neo4jStore) DeleteRecord(ctx context.Context, recordUuid string) error {
	if recordUuid == "" {
		return types.ErrEmptyUuid
	}

	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, `
			MATCH (n {uuid: $uuid})
			DETACH DELETE n
		`, map[string]any{"uuid": recordUuid})
	})
	return err
}

// ListLabels returns the distinct labels present in the store.
func (s *Neo4jStore) ListLabels(ctx context.Context) ([]string, error) {
	session := s.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: s.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
			CALL db.labels() YIELD label
			RETURN label
			ORDER BY label
		`, nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	dbRecords := result.([]*db.Record)
	labels := make([]string, 0, len(dbRecords))
	for _, dbRecord := range dbRecords {
		if value, found := dbRecord.Get("label"); found {
			if label, ok := value.(string); ok {
				labels = append(labels, label)
			}
		}
	}
	return labels, nil
}

// Provider reports the backing store implementation.
func (s *Neo4jStore) Provider() StoreProvider {
	return StoreProviderNeo4j
}

// Close releases the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// recordFromDBNode converts a Neo4j node into the core record model. The
// uuid property, when present, doubles as the record id.
func recordFromDBNode(node dbtype.Node) *types.Record {
	record := &types.Record{
		Labels:     append([]string(nil), node.Labels...),
		Properties: types.DecodeProperties(node.Props),
	}
	if id, ok := node.Props["uuid"].(string); ok {
		record.Uuid = id
		delete(record.Properties, "uuid")
	}
	return record
}

var _ RecordStore = (*Neo4jStore)(nil)
