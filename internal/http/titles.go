package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/streamvault/watchlist-api/internal/auth"
	"github.com/streamvault/watchlist-api/internal/domain"
	"github.com/streamvault/watchlist-api/internal/policy"
	"github.com/streamvault/watchlist-api/internal/repository"
)

type titleRequest struct {
	Title      string `json:"title" validate:"required,min=2,max=255"`
	Storyline  string `json:"storyline" validate:"max=5000"`
	Active     *bool  `json:"active"`
	PlatformID string `json:"platformId" validate:"required,uuid"`
}

type titleResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Storyline   string  `json:"storyline"`
	Active      bool    `json:"active"`
	Platform    string  `json:"platform"`
	PlatformID  string  `json:"platformId"`
	AvgRating   float64 `json:"avgRating"`
	RatingCount int64   `json:"ratingCount"`
}

func (s *Server) handleListTitles(w http.ResponseWriter, r *http.Request) {
	var filters repository.TitleListFilters
	query := r.URL.Query()
	if val := strings.TrimSpace(query.Get("platformId")); val != "" {
		filters.PlatformID = &val
	}
	if val := strings.TrimSpace(query.Get("active")); val != "" {
		active, err := strconv.ParseBool(val)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid active value")
			return
		}
		filters.Active = &active
	}

	titles, err := s.repo.Titles.List(r.Context(), filters)
	if err != nil {
		s.respondRepoError(w, err, "WatchList")
		return
	}

	items := make([]titleResponse, 0, len(titles))
	for _, t := range titles {
		items = append(items, toTitleResponse(t))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateTitle(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req titleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	title, err := s.repo.Titles.Create(r.Context(), titleParamsFromRequest(req))
	if err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}
	s.respondJSON(w, http.StatusCreated, toTitleResponse(title))
}

func (s *Server) handleGetTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "WatchList")
	if !ok {
		return
	}
	title, err := s.repo.Titles.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "WatchList")
		return
	}
	s.respondJSON(w, http.StatusOK, toTitleResponse(title))
}

func (s *Server) handleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req titleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	id, ok := s.pathID(w, r, "WatchList")
	if !ok {
		return
	}
	title, err := s.repo.Titles.Update(r.Context(), id, titleParamsFromRequest(req))
	if err != nil {
		s.respondRepoError(w, err, "WatchList")
		return
	}
	s.respondJSON(w, http.StatusOK, toTitleResponse(title))
}

func (s *Server) handleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	id, ok := s.pathID(w, r, "WatchList")
	if !ok {
		return
	}
	if err := s.repo.Titles.Delete(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "WatchList")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func titleParamsFromRequest(req titleRequest) repository.TitleParams {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return repository.TitleParams{
		Name:       req.Title,
		Storyline:  req.Storyline,
		Active:     active,
		PlatformID: req.PlatformID,
	}
}

func toTitleResponse(title domain.Title) titleResponse {
	return titleResponse{
		ID:          title.ID,
		Title:       title.Name,
		Storyline:   title.Storyline,
		Active:      title.Active,
		Platform:    title.PlatformName,
		PlatformID:  title.PlatformID,
		AvgRating:   title.AvgRating,
		RatingCount: title.RatingCount,
	}
}
