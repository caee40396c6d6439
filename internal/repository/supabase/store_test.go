package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"realestate-chatbot-be/pkg/lead"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restServer fakes the PostgREST endpoints used by Store
type restServer struct {
	mu     sync.Mutex
	tables map[string]string
	writes map[string][]string
}

func newRestServer() *restServer {
	return &restServer{tables: map[string]string{}, writes: map[string][]string{}}
}

func (s *restServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	w.Header().Set("Content-Type", "application/json")

	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		body, ok := s.tables[table]
		if !ok {
			body = "[]"
		}
		_, _ = w.Write([]byte(body))
	case http.MethodPost:
		raw, _ := io.ReadAll(r.Body)
		s.writes[table] = append(s.writes[table], string(raw))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("[]"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T, rs *restServer) *Store {
	t.Helper()
	srv := httptest.NewServer(rs)
	t.Cleanup(srv.Close)

	store, err := New(Config{URL: srv.URL, APIKey: "service-key"})
	require.NoError(t, err)
	return store
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Config{APIKey: "k"})
	assert.Error(t, err)
	_, err = New(Config{URL: "http://localhost"})
	assert.Error(t, err)
}

func TestQAPairsAndProperties(t *testing.T) {
	rs := newRestServer()
	rs.tables["training_qa"] = `[{"id":"6f1c1b7e-2c1a-4d59-9a43-0d7f2b0c9a11","question":"Office hours?","answer":"9-5","category":"about","priority":7}]`
	rs.tables["properties"] = `[{"id":"0b9d2f3e-5a7c-4a6f-8b1e-2c3d4e5f6a7b","title":"Lake house","price":700000,"bedrooms":3,"has_pool":true,"features":["dock"]}]`
	store := newTestStore(t, rs)

	pairs, err := store.QAPairs(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "9-5", pairs[0].Answer)
	assert.Equal(t, 7, pairs[0].Priority)

	props, err := store.Properties(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.True(t, props[0].HasPool)
	assert.Equal(t, 3, *props[0].Bedrooms)
	assert.Equal(t, []string{"dock"}, props[0].Features)
}

func TestUpsertLeadMergesExistingRow(t *testing.T) {
	rs := newRestServer()
	rs.tables["leads"] = `[{"id":"6f1c1b7e-2c1a-4d59-9a43-0d7f2b0c9a11","visitor_id":"v1","name":"Dana Cruz","budget":"$500,000"}]`
	store := newTestStore(t, rs)

	got, err := store.UpsertLead(context.Background(), uuid.New(), "v1", "c1", lead.VisitorInfo{Email: "dana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Dana Cruz", got.Name)
	assert.Equal(t, "dana@example.com", got.Email)
	assert.Equal(t, "c1", got.ConversationId)

	require.Len(t, rs.writes["leads"], 1)
	var written leadRow
	require.NoError(t, json.Unmarshal([]byte(rs.writes["leads"][0]), &written))
	assert.Equal(t, "$500,000", written.Budget)
	assert.Equal(t, "dana@example.com", written.Email)
}

func TestHasFeature(t *testing.T) {
	rs := newRestServer()
	rs.tables["features"] = `[{"key":"chatbot","is_active":true}]`
	rs.tables["account_features"] = `[{"enabled":true}]`
	store := newTestStore(t, rs)

	ok, err := store.HasFeature(context.Background(), uuid.New(), "chatbot")
	require.NoError(t, err)
	assert.True(t, ok)

	rs.mu.Lock()
	rs.tables["account_features"] = `[]`
	rs.mu.Unlock()
	ok, err = store.HasFeature(context.Background(), uuid.New(), "chatbot")
	require.NoError(t, err)
	assert.False(t, ok)
}
