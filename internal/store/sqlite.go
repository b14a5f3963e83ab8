package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/crewflow/console/pkg/api"
)

// SQLiteStore persists flow documents in a local sqlite database. The
// document is stored as serialized JSON so the wire contract round-trips
// exactly
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and migrates) a sqlite-backed flow store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS flows (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		doc TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Create(
	ctx context.Context, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	res := doc.Clone()
	if res.ID == "" {
		res.ID = api.FlowID(uuid.NewString())
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO flows (id, name, doc) VALUES (?, ?, ?)`,
		string(res.ID), res.Name, string(data),
	)
	if err != nil {
		if rowExists(ctx, s.db, res.ID) {
			return nil, fmt.Errorf("%w: %s", ErrFlowExists, res.ID)
		}
		return nil, err
	}
	return res, nil
}

func (s *SQLiteStore) Get(
	ctx context.Context, id api.FlowID,
) (*api.FlowConfiguration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT doc FROM flows WHERE id = ?`, string(id),
	)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
		}
		return nil, err
	}

	var doc api.FlowConfiguration
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLiteStore) Update(
	ctx context.Context, id api.FlowID, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	res := doc.Clone()
	res.ID = id

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	sqlRes, err := s.db.ExecContext(ctx,
		`UPDATE flows
		 SET name = ?, doc = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		res.Name, string(data), string(id),
	)
	if err != nil {
		return nil, err
	}
	affected, err := sqlRes.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	return res, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id api.FlowID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM flows WHERE id = ?`, string(id),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) List(
	ctx context.Context,
) ([]*api.FlowSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM flows ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*api.FlowSummary
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var doc api.FlowConfiguration
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			return nil, err
		}
		res = append(res, doc.Summarize())
	}
	return res, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func rowExists(ctx context.Context, db *sql.DB, id api.FlowID) bool {
	row := db.QueryRowContext(ctx,
		`SELECT 1 FROM flows WHERE id = ?`, string(id),
	)
	var one int
	return row.Scan(&one) == nil
}
