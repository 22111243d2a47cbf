// Package api exposes the service over HTTP: user registration, journal
// CRUD, explicit re-indexing, semantic search, and sentiment classification.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hunterxdhanush/mindful-mentor/internal/logging"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/inference"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/services"
)

// UserRegistrar upserts owner identities.
type UserRegistrar interface {
	RegisterOrUpdate(ctx context.Context, email, displayName string) (*models.User, error)
}

// JournalManager handles journal persistence.
type JournalManager interface {
	Create(ctx context.Context, userID, title, content, moodTag string) (*services.CreatedJournal, error)
	Get(ctx context.Context, id string) (*models.Journal, error)
	List(ctx context.Context, userID string) ([]*models.Journal, error)
	Delete(ctx context.Context, id string) error
}

// Indexer re-indexes a journal on explicit request.
type Indexer interface {
	IndexJournal(ctx context.Context, journalID string) error
}

// Searcher answers semantic search queries.
type Searcher interface {
	Search(ctx context.Context, userID, query string, limit int) ([]models.SearchHit, error)
}

// SentimentAnalyzer classifies the emotional tone of text.
type SentimentAnalyzer interface {
	Classify(ctx context.Context, text string) (inference.Sentiment, error)
}

// Server is the HTTP front of the service.
type Server struct {
	address   string
	logger    logging.Logger
	users     UserRegistrar
	journals  JournalManager
	indexer   Indexer
	search    Searcher
	sentiment SentimentAnalyzer
}

// NewServer constructs a Server.
func NewServer(address string, logger logging.Logger, users UserRegistrar, journals JournalManager,
	indexer Indexer, search Searcher, sentiment SentimentAnalyzer) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "http_server"),
		users:     users,
		journals:  journals,
		indexer:   indexer,
		search:    search,
		sentiment: sentiment,
	}
}

// Routes builds the chi router for the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/users", s.handleRegisterUser)

		r.Route("/journals", func(r chi.Router) {
			r.Post("/", s.handleCreateJournal)
			r.Get("/", s.handleListJournals)
			r.Get("/{id}", s.handleGetJournal)
			r.Delete("/{id}", s.handleDeleteJournal)
			r.Post("/{id}/index", s.handleIndexJournal)
		})

		r.Post("/search", s.handleSearch)
		r.Post("/sentiment", s.handleSentiment)
	})

	return r
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
