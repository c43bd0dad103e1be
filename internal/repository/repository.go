package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/skovtun/lightning-node-registry/internal/db"
	"github.com/skovtun/lightning-node-registry/internal/source"
)

// Tx is an alias for pgx.Tx
type Tx = pgx.Tx

// Querier is the subset of pool behavior the repository needs. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository handles database operations for stored nodes
type Repository struct {
	db Querier
}

// NewRepository creates a new repository
func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

const upsertNodeSQL = `
	INSERT INTO nodes (public_key, alias, channels, capacity, first_seen, updated_at, city, country, imported_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (public_key) DO UPDATE SET
		alias = EXCLUDED.alias,
		channels = EXCLUDED.channels,
		capacity = EXCLUDED.capacity,
		updated_at = EXCLUDED.updated_at,
		city = EXCLUDED.city,
		country = EXCLUDED.country,
		imported_at = now()
`

// UpsertBatch writes the whole batch in a single transaction, matching rows
// by public key. If any write fails the transaction is rolled back and zero
// rows are committed. public_key, id, and first_seen are never changed for
// an existing row.
func (r *Repository) UpsertBatch(ctx context.Context, nodes []source.Node) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, &StorageError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	for _, node := range nodes {
		city := encodeLocale(node.City)
		country := encodeLocale(node.Country)

		_, err := tx.Exec(ctx, upsertNodeSQL,
			node.PublicKey,
			node.Alias,
			node.Channels,
			node.Capacity,
			node.FirstSeen,
			node.UpdatedAt,
			city,
			country,
		)
		if err != nil {
			return 0, &StorageError{Op: "upsert", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &StorageError{Op: "commit", Err: err}
	}

	return len(nodes), nil
}

// ListByCapacity returns all stored nodes ordered by capacity descending,
// with the surrogate id as a stable tiebreak.
func (r *Repository) ListByCapacity(ctx context.Context) ([]db.NodeRanking, error) {
	query := `
		SELECT public_key, alias, capacity, first_seen
		FROM nodes
		ORDER BY capacity DESC, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "query", Err: err}
	}
	defer rows.Close()

	var nodes []db.NodeRanking
	for rows.Next() {
		var node db.NodeRanking
		if err := rows.Scan(&node.PublicKey, &node.Alias, &node.Capacity, &node.FirstSeen); err != nil {
			return nil, &StorageError{Op: "scan", Err: err}
		}
		nodes = append(nodes, node)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "rows", Err: err}
	}

	return nodes, nil
}

// encodeLocale serializes an optional locale-code mapping to JSON text.
// A nil map or a serialization failure degrades to NULL rather than
// aborting the record.
func encodeLocale(m map[string]string) *string {
	if m == nil {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}
