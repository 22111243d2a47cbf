package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/services"
)

type fakeUsers struct {
	user *models.User
	err  error
}

func (f *fakeUsers) RegisterOrUpdate(_ context.Context, email, displayName string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil {
		return f.user, nil
	}
	return &models.User{ID: "u1", Email: email, DisplayName: displayName}, nil
}

type fakeJournals struct {
	created  *services.CreatedJournal
	journal  *models.Journal
	journals []*models.Journal
	err      error
}

func (f *fakeJournals) Create(_ context.Context, userID, title, content, moodTag string) (*services.CreatedJournal, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.created != nil {
		return f.created, nil
	}
	return &services.CreatedJournal{
		Journal:  &models.Journal{ID: "j1", UserID: userID, Title: title, Content: content, MoodTag: moodTag},
		Embedded: true,
	}, nil
}

func (f *fakeJournals) Get(_ context.Context, id string) (*models.Journal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.journal, nil
}

func (f *fakeJournals) List(_ context.Context, userID string) ([]*models.Journal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.journals, nil
}

func (f *fakeJournals) Delete(_ context.Context, id string) error {
	return f.err
}

type fakeIndexer struct {
	err    error
	called bool
	lastID string
}

func (f *fakeIndexer) IndexJournal(_ context.Context, journalID string) error {
	f.called = true
	f.lastID = journalID
	return f.err
}

type fakeSearcher struct {
	hits      []models.SearchHit
	err       error
	lastLimit int
}

func (f *fakeSearcher) Search(_ context.Context, userID, query string, limit int) ([]models.SearchHit, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

type fakeSentiment struct {
	result inference.Sentiment
	err    error
}

func (f *fakeSentiment) Classify(_ context.Context, text string) (inference.Sentiment, error) {
	if f.err != nil {
		return inference.Sentiment{}, f.err
	}
	return f.result, nil
}

type serverFakes struct {
	users     *fakeUsers
	journals  *fakeJournals
	indexer   *fakeIndexer
	search    *fakeSearcher
	sentiment *fakeSentiment
}

func newTestServer() (*Server, *serverFakes) {
	f := &serverFakes{
		users:     &fakeUsers{},
		journals:  &fakeJournals{},
		indexer:   &fakeIndexer{},
		search:    &fakeSearcher{},
		sentiment: &fakeSentiment{},
	}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	s := NewServer(":0", logger, f.users, f.journals, f.indexer, f.search, f.sentiment)
	return s, f
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRegisterUser(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"valid", map[string]string{"email": "a@b.com", "display_name": "Alice"}, http.StatusOK},
		{"missing email", map[string]string{"display_name": "Alice"}, http.StatusBadRequest},
		{"bad email", map[string]string{"email": "nope", "display_name": "Alice"}, http.StatusBadRequest},
		{"missing display name", map[string]string{"email": "a@b.com"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer()
			rr := doJSON(t, s.Routes(), http.MethodPost, "/api/users", tt.body)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestRegisterUserResponseBody(t *testing.T) {
	s, f := newTestServer()
	f.users.user = &models.User{ID: "u42", Email: "a@b.com", DisplayName: "Alice"}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/users",
		map[string]string{"email": "a@b.com", "display_name": "Alice"})

	require.Equal(t, http.StatusOK, rr.Code)
	var got userResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "u42", got.ID)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestCreateJournal(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals",
		map[string]string{"user_id": "u1", "content": "today was calm"})

	require.Equal(t, http.StatusCreated, rr.Code)
	var got createJournalResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "j1", got.Journal.ID)
	assert.True(t, got.Embedded)
}

func TestCreateJournalMissingContent(t *testing.T) {
	s, f := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals",
		map[string]string{"user_id": "u1"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, f.journals.created)
}

func TestCreateJournalNotEmbedded(t *testing.T) {
	s, f := newTestServer()
	f.journals.created = &services.CreatedJournal{
		Journal:  &models.Journal{ID: "j2", UserID: "u1", Content: "text"},
		Embedded: false,
	}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals",
		map[string]string{"user_id": "u1", "content": "text"})

	require.Equal(t, http.StatusCreated, rr.Code)
	var got createJournalResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.False(t, got.Embedded)
}

func TestListJournals(t *testing.T) {
	s, f := newTestServer()
	f.journals.journals = []*models.Journal{
		{ID: "j2", UserID: "u1", Content: "later"},
		{ID: "j1", UserID: "u1", Content: "earlier"},
	}

	rr := doJSON(t, s.Routes(), http.MethodGet, "/api/journals?user_id=u1", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var got struct {
		Journals []journalResponse `json:"journals"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Journals, 2)
	assert.Equal(t, "j2", got.Journals[0].ID)
}

func TestListJournalsMissingUserID(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodGet, "/api/journals", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetJournalNotFound(t *testing.T) {
	s, f := newTestServer()
	f.journals.err = fmt.Errorf("journal: %w", common.ErrorNotFound)

	rr := doJSON(t, s.Routes(), http.MethodGet, "/api/journals/missing", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteJournal(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodDelete, "/api/journals/j1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestIndexJournal(t *testing.T) {
	s, f := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals/j7/index", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.indexer.called)
	assert.Equal(t, "j7", f.indexer.lastID)
}

func TestIndexJournalProviderError(t *testing.T) {
	s, f := newTestServer()
	f.indexer.err = &common.ProviderError{Model: "m", StatusCode: 503, Body: "overloaded"}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals/j7/index", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestIndexJournalNothingToEmbed(t *testing.T) {
	s, f := newTestServer()
	f.indexer.err = fmt.Errorf("journal j7: %w", common.ErrorNothingToEmbed)

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/journals/j7/index", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSearch(t *testing.T) {
	s, f := newTestServer()
	now := time.Now()
	f.search.hits = []models.SearchHit{
		{JournalID: "j1", Title: "calm", CreatedAt: now, Score: 0.91},
		{JournalID: "j2", CreatedAt: now, Score: 0.42},
	}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/search",
		map[string]any{"user_id": "u1", "query": "feeling calm", "limit": 5})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, f.search.lastLimit)
	var got struct {
		Results []searchHitResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	assert.Equal(t, "j1", got.Results[0].JournalID)
	assert.InDelta(t, 0.91, got.Results[0].Score, 1e-9)
}

func TestSearchEmptyResults(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/search",
		map[string]any{"user_id": "u1", "query": "anything"})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"results":[]}`, rr.Body.String())
}

func TestSearchValidation(t *testing.T) {
	s, _ := newTestServer()
	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/search",
		map[string]any{"query": "no user"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSentiment(t *testing.T) {
	s, f := newTestServer()
	conf := 0.87
	f.sentiment.result = inference.Sentiment{Label: "negative", Confidence: &conf}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/sentiment",
		map[string]string{"text": "rough day"})

	require.Equal(t, http.StatusOK, rr.Code)
	var got sentimentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "negative", got.Label)
	require.NotNil(t, got.Confidence)
	assert.InDelta(t, 0.87, *got.Confidence, 1e-9)
}

func TestSentimentNoConfidence(t *testing.T) {
	s, f := newTestServer()
	f.sentiment.result = inference.Sentiment{Label: "neutral"}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/sentiment",
		map[string]string{"text": "okay"})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"label":"neutral"}`, rr.Body.String())
}

func TestSentimentProviderError(t *testing.T) {
	s, f := newTestServer()
	f.sentiment.err = &common.ProviderError{Model: "m", StatusCode: 500, Body: "boom"}

	rr := doJSON(t, s.Routes(), http.MethodPost, "/api/sentiment",
		map[string]string{"text": "rough day"})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, http.StatusBadGateway, got.Status)
}

func TestInternalErrorHidesDetails(t *testing.T) {
	s, f := newTestServer()
	f.journals.err = fmt.Errorf("pq: connection refused to 10.0.0.5")

	rr := doJSON(t, s.Routes(), http.MethodGet, "/api/journals/j1", nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
}

func TestInvalidJSONBody(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
