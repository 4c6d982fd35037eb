package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	firestore "google.golang.org/api/firestore/v1"
)

// fakeFirestore serves the subset of the Firestore REST API used by FirestoreStore.
// Listing returns one document per page so that paging is exercised.
type fakeFirestore struct {
	mu   sync.Mutex
	docs map[string]*firestore.Document
}

func (f *fakeFirestore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := strings.TrimPrefix(r.URL.Path, "/v1/")
	switch r.Method {
	case http.MethodPatch:
		var doc firestore.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc.Name = name
		f.docs[name] = &doc
		writeFakeJSON(w, http.StatusOK, &doc)
	case http.MethodGet:
		var names []string
		for docName := range f.docs {
			rest, ok := strings.CutPrefix(docName, name+"/")
			if ok && !strings.Contains(rest, "/") {
				names = append(names, docName)
			}
		}
		sort.Strings(names)
		offset, _ := strconv.Atoi(r.URL.Query().Get("pageToken"))
		response := &firestore.ListDocumentsResponse{}
		if offset < len(names) {
			response.Documents = []*firestore.Document{f.docs[names[offset]]}
			if offset+1 < len(names) {
				response.NextPageToken = strconv.Itoa(offset + 1)
			}
		}
		writeFakeJSON(w, http.StatusOK, response)
	case http.MethodDelete:
		if _, ok := f.docs[name]; !ok {
			writeFakeJSON(w, http.StatusNotFound, map[string]any{
				"error": map[string]any{"code": http.StatusNotFound, "message": "no entity to delete", "status": "NOT_FOUND"},
			})
			return
		}
		delete(f.docs, name)
		writeFakeJSON(w, http.StatusOK, map[string]any{})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeFakeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newFakeFirestoreStore(t *testing.T) (*FirestoreStore, *fakeFirestore) {
	t.Helper()
	fake := &fakeFirestore{docs: make(map[string]*firestore.Document)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewFirestoreStore(context.Background(), FirestoreConfig{
		ProjectId: "test",
		Endpoint:  srv.URL + "/",
	})
	require.NoError(t, err)
	return store, fake
}

func TestFirestoreStore(t *testing.T) {
	runStorageContract(t, func(t *testing.T) Storage {
		store, _ := newFakeFirestoreStore(t)
		return store
	})
}

func TestFirestoreStore_DocumentLayout(t *testing.T) {
	// given
	store, fake := newFakeFirestoreStore(t)

	// when
	err := store.AddDocument(context.Background(), "user-alice", "doc-food", Fields{"category": "food", "notes": nil})

	// then
	require.NoError(t, err)
	doc, ok := fake.docs["projects/test/databases/(default)/documents/user-alice/doc-food"]
	require.True(t, ok)
	assert.Equal(t, "food", doc.Fields["category"].StringValue)
	assert.Equal(t, "NULL_VALUE", doc.Fields["notes"].NullValue)
}

func TestNewFirestoreStore(t *testing.T) {
	t.Run("missing credentials file fails", func(t *testing.T) {
		_, err := NewFirestoreStore(context.Background(), FirestoreConfig{
			ProjectId:       "test",
			CredentialsFile: t.TempDir() + "/missing.json",
		})

		assert.ErrorContains(t, err, "unable to read Firestore credentials")
	})

	t.Run("project id is required", func(t *testing.T) {
		_, err := NewFirestoreStore(context.Background(), FirestoreConfig{Endpoint: "http://localhost:8080/"})

		assert.ErrorContains(t, err, "project id is not configured")
	})
}

func TestFirestoreValues(t *testing.T) {
	assert.Equal(t, "12.5", fromFirestoreValue(toFirestoreValue(12.5)))
	assert.Equal(t, "", fromFirestoreValue(toFirestoreValue("")))
	assert.Nil(t, fromFirestoreValue(toFirestoreValue(nil)))
}
