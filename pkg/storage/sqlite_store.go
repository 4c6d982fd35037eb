package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// SqliteStore keeps documents in the SQLite "documents" table, one JSON encoded row per document.
type SqliteStore struct {
	db *sql.DB
}

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{db: db}
}

func (s *SqliteStore) AddDocument(ctx context.Context, collectionId, documentId string, fields Fields) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("could not encode document %s: %w", documentId, err)
	}

	query := `INSERT INTO documents (collection_id, document_id, fields, updated_at)
			  VALUES (?, ?, ?, ?)
			  ON CONFLICT (collection_id, document_id)
			  DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`
	_, err = s.db.ExecContext(ctx, query, collectionId, documentId, string(encoded), time.Now().UTC())
	if err != nil {
		err := fmt.Errorf("could not store document %s/%s: %w", collectionId, documentId, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SqliteStore) GetCollection(ctx context.Context, collectionId string) ([]Fields, error) {
	query := `SELECT fields FROM documents WHERE collection_id = ? ORDER BY document_id`
	rows, err := s.db.QueryContext(ctx, query, collectionId)
	if err != nil {
		err := fmt.Errorf("could not query collection %s: %w", collectionId, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	documents := make([]Fields, 0)
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		var fields Fields
		if err := json.Unmarshal([]byte(encoded), &fields); err != nil {
			return nil, fmt.Errorf("could not decode document: %w", err)
		}
		documents = append(documents, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read collection %s: %w", collectionId, err)
	}
	return documents, nil
}

func (s *SqliteStore) DeleteDocument(ctx context.Context, collectionId, documentId string) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection_id = ? AND document_id = ?`, collectionId, documentId)
	if err != nil {
		err := fmt.Errorf("could not delete document %s/%s: %w", collectionId, documentId, err)
		log.Error(err)
		return err
	}
	if affected, _ := result.RowsAffected(); affected > 0 {
		log.Debugf("Deleted document %s from collection %s", documentId, collectionId)
	}
	return nil
}

func (s *SqliteStore) ClearCollection(ctx context.Context, collectionId string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection_id = ?`, collectionId)
	if err != nil {
		err := fmt.Errorf("could not clear collection %s: %w", collectionId, err)
		log.Error(err)
		return err
	}
	log.Infof("Cleared collection: %s", collectionId)
	return nil
}
