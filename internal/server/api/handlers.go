package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hunterxdhanush/mindful-mentor/internal/common"
	"github.com/hunterxdhanush/mindful-mentor/internal/server/models"
)

var validate = validator.New()

type registerUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=120"`
}

type createJournalRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"omitempty,max=200"`
	Content string `json:"content" validate:"required"`
	MoodTag string `json:"mood_tag" validate:"omitempty,max=50"`
}

type searchRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Query  string `json:"query" validate:"required"`
	Limit  int    `json:"limit" validate:"omitempty,min=0"`
}

type sentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type journalResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	MoodTag   string    `json:"mood_tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createJournalResponse struct {
	Journal  journalResponse `json:"journal"`
	Embedded bool            `json:"embedded"`
}

type searchHitResponse struct {
	JournalID string    `json:"journal_id"`
	Title     string    `json:"title,omitempty"`
	MoodTag   string    `json:"mood_tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Score     float64   `json:"score"`
}

type sentimentResponse struct {
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toJournalResponse(j *models.Journal) journalResponse {
	return journalResponse{
		ID:        j.ID,
		UserID:    j.UserID,
		Title:     j.Title,
		Content:   j.Content,
		MoodTag:   j.MoodTag,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.users.RegisterOrUpdate(r.Context(), req.Email, req.DisplayName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var req createJournalRequest
	if !s.decode(w, r, &req) {
		return
	}

	created, err := s.journals.Create(r.Context(), req.UserID, req.Title, req.Content, req.MoodTag)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, createJournalResponse{
		Journal:  toJournalResponse(created.Journal),
		Embedded: created.Embedded,
	})
}

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.respondError(w, r, common.ErrorValidation)
		return
	}

	journals, err := s.journals.List(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]journalResponse, 0, len(journals))
	for _, j := range journals {
		out = append(out, toJournalResponse(j))
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"journals": out})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	journal, err := s.journals.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, toJournalResponse(journal))
}

func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := s.journals.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIndexJournal(w http.ResponseWriter, r *http.Request) {
	if err := s.indexer.IndexJournal(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"indexed": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	hits, err := s.search.Search(r.Context(), req.UserID, req.Query, req.Limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out := make([]searchHitResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, searchHitResponse{
			JournalID: h.JournalID,
			Title:     h.Title,
			MoodTag:   h.MoodTag,
			CreatedAt: h.CreatedAt,
			Score:     h.Score,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.sentiment.Classify(r.Context(), req.Text)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, sentimentResponse{
		Label:      result.Label,
		Confidence: result.Confidence,
	})
}

// decode parses the JSON body into dst and validates it. On failure it
// writes a 400 response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps service errors to HTTP status codes: validation to 400,
// missing rows to 404, provider failures to 502, anything else to 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var providerErr *common.ProviderError

	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorNothingToEmbed):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &providerErr):
		s.logger.Error(r.Context(), "inference provider error", "error", err.Error())
		s.writeError(w, http.StatusBadGateway, err.Error())
	default:
		s.logger.Error(r.Context(), "internal error", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg, Status: status})
}
