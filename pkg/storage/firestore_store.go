package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const firestoreNullValue = "NULL_VALUE"

type FirestoreConfig struct {
	ProjectId       string
	DatabaseId      string
	CredentialsFile string
	// Endpoint targets an emulator or fake server; requests are then unauthenticated.
	Endpoint string
}

// FirestoreStore keeps documents in Cloud Firestore through its REST API.
// Every field is stored as a string value, nil as a null value.
type FirestoreStore struct {
	documents *firestore.ProjectsDatabasesDocumentsService
	root      string
}

func NewFirestoreStore(ctx context.Context, cfg FirestoreConfig) (*FirestoreStore, error) {
	projectId := cfg.ProjectId
	var opts []option.ClientOption

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint), option.WithoutAuthentication())
	} else {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read Firestore credentials from %s: %w", cfg.CredentialsFile, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, firestore.DatastoreScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Firestore credentials: %w", err)
		}
		if projectId == "" {
			projectId = creds.ProjectID
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	if projectId == "" {
		return nil, fmt.Errorf("firestore project id is not configured")
	}

	databaseId := cfg.DatabaseId
	if databaseId == "" {
		databaseId = "(default)"
	}

	service, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Firestore client: %w", err)
	}
	log.Infof("Using Firestore project %s, database %s", projectId, databaseId)

	return &FirestoreStore{
		documents: service.Projects.Databases.Documents,
		root:      fmt.Sprintf("projects/%s/databases/%s/documents", projectId, databaseId),
	}, nil
}

func (s *FirestoreStore) documentName(collectionId, documentId string) string {
	return s.root + "/" + collectionId + "/" + documentId
}

func (s *FirestoreStore) AddDocument(ctx context.Context, collectionId, documentId string, fields Fields) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	values := make(map[string]firestore.Value, len(fields))
	for k, v := range fields {
		values[k] = toFirestoreValue(v)
	}

	// a patch without update mask replaces the whole document, creating it when missing
	_, err := s.documents.Patch(s.documentName(collectionId, documentId), &firestore.Document{Fields: values}).
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("unable to write document %s/%s to Firestore: %w", collectionId, documentId, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *FirestoreStore) GetCollection(ctx context.Context, collectionId string) ([]Fields, error) {
	docs, err := s.listDocuments(ctx, collectionId)
	if err != nil {
		return nil, err
	}
	documents := make([]Fields, 0, len(docs))
	for _, doc := range docs {
		fields := make(Fields, len(doc.Fields))
		for k, v := range doc.Fields {
			fields[k] = fromFirestoreValue(v)
		}
		documents = append(documents, fields)
	}
	return documents, nil
}

func (s *FirestoreStore) DeleteDocument(ctx context.Context, collectionId, documentId string) error {
	if err := validateKeys(collectionId, documentId); err != nil {
		return err
	}
	return s.deleteByName(ctx, s.documentName(collectionId, documentId))
}

func (s *FirestoreStore) ClearCollection(ctx context.Context, collectionId string) error {
	docs, err := s.listDocuments(ctx, collectionId)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.deleteByName(ctx, doc.Name); err != nil {
			return err
		}
	}
	log.Infof("Cleared collection: %s", collectionId)
	return nil
}

// listDocuments fetches every page of the collection, ordered by document id.
func (s *FirestoreStore) listDocuments(ctx context.Context, collectionId string) ([]*firestore.Document, error) {
	var docs []*firestore.Document
	err := s.documents.List(s.root, collectionId).
		Context(ctx).
		Pages(ctx, func(page *firestore.ListDocumentsResponse) error {
			docs = append(docs, page.Documents...)
			return nil
		})
	if err != nil {
		err := fmt.Errorf("unable to list Firestore collection %s: %w", collectionId, err)
		log.Error(err)
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		return path.Base(docs[i].Name) < path.Base(docs[j].Name)
	})
	return docs, nil
}

func (s *FirestoreStore) deleteByName(ctx context.Context, name string) error {
	_, err := s.documents.Delete(name).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil
		}
		err := fmt.Errorf("unable to delete Firestore document %s: %w", name, err)
		log.Error(err)
		return err
	}
	log.Debugf("Deleted document: %s", name)
	return nil
}

func toFirestoreValue(v any) firestore.Value {
	switch value := v.(type) {
	case nil:
		return firestore.Value{NullValue: firestoreNullValue}
	case string:
		return firestore.Value{StringValue: value, ForceSendFields: []string{"StringValue"}}
	default:
		return firestore.Value{StringValue: fmt.Sprint(value), ForceSendFields: []string{"StringValue"}}
	}
}

func fromFirestoreValue(v firestore.Value) any {
	if v.NullValue != "" {
		return nil
	}
	return v.StringValue
}
