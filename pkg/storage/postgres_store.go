package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PostgresStore keeps documents in the Postgres "documents" table as JSONB.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AddDocument(ctx context.Context, collectionId, documentId string, fields Fields) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("could not encode document %s: %w", documentId, err)
	}

	query := `INSERT INTO documents (collection_id, document_id, fields, updated_at)
			  VALUES ($1, $2, $3, now())
			  ON CONFLICT (collection_id, document_id)
			  DO UPDATE SET fields = EXCLUDED.fields, updated_at = EXCLUDED.updated_at`
	_, err = s.db.Exec(ctx, query, collectionId, documentId, encoded)
	if err != nil {
		err := fmt.Errorf("could not store document %s/%s: %w", collectionId, documentId, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *PostgresStore) GetCollection(ctx context.Context, collectionId string) ([]Fields, error) {
	query := `SELECT fields FROM documents WHERE collection_id = $1 ORDER BY document_id`
	rows, err := s.db.Query(ctx, query, collectionId)
	if err != nil {
		err := fmt.Errorf("could not query collection %s: %w", collectionId, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	documents := make([]Fields, 0)
	for rows.Next() {
		var encoded []byte
		if err := rows.Scan(&encoded); err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		var fields Fields
		if err := json.Unmarshal(encoded, &fields); err != nil {
			return nil, fmt.Errorf("could not decode document: %w", err)
		}
		documents = append(documents, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read collection %s: %w", collectionId, err)
	}
	return documents, nil
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, collectionId, documentId string) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE collection_id = $1 AND document_id = $2`, collectionId, documentId)
	if err != nil {
		err := fmt.Errorf("could not delete document %s/%s: %w", collectionId, documentId, err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() > 0 {
		log.Debugf("Deleted document %s from collection %s", documentId, collectionId)
	}
	return nil
}

func (s *PostgresStore) ClearCollection(ctx context.Context, collectionId string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM documents WHERE collection_id = $1`, collectionId)
	if err != nil {
		err := fmt.Errorf("could not clear collection %s: %w", collectionId, err)
		log.Error(err)
		return err
	}
	log.Infof("Cleared collection: %s", collectionId)
	return nil
}
