package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/streamvault/watchlist-api/internal/auth"
	"github.com/streamvault/watchlist-api/internal/domain"
	"github.com/streamvault/watchlist-api/internal/policy"
	"github.com/streamvault/watchlist-api/internal/repository"
)

type reviewCreateRequest struct {
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"max=5000"`
	Active      *bool  `json:"active"`
}

type reviewUpdateRequest struct {
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Active      *bool   `json:"active"`
}

type reviewResponse struct {
	ID          string    `json:"id"`
	TitleID     string    `json:"titleId"`
	Author      string    `json:"author"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	caller := auth.IdentityFrom(r.Context())
	if err := policy.ReviewCreate(caller); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	titleID, ok := s.pathID(w, r, "WatchList")
	if !ok {
		return
	}
	review, err := s.repo.Reviews.Create(r.Context(), repository.ReviewCreateParams{
		TitleID:     titleID,
		AuthorID:    caller.UserID,
		Rating:      req.Rating,
		Description: req.Description,
		Active:      active,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondError(w, http.StatusConflict, "CONFLICT", "A review already exists for this user")
			return
		}
		s.respondRepoError(w, err, "WatchList")
		return
	}
	s.respondJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (s *Server) handleListReviewsForTitle(w http.ResponseWriter, r *http.Request) {
	if auth.IdentityFrom(r.Context()) == nil {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	titleID, ok := s.pathID(w, r, "WatchList")
	if !ok {
		return
	}
	if _, err := s.repo.Titles.GetByID(r.Context(), titleID); err != nil {
		s.respondRepoError(w, err, "WatchList")
		return
	}

	var filters repository.ReviewListFilters
	query := r.URL.Query()
	if val := strings.TrimSpace(query.Get("username")); val != "" {
		filters.Username = &val
	}
	if val := strings.TrimSpace(query.Get("active")); val != "" {
		active, err := strconv.ParseBool(val)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid active value")
			return
		}
		filters.Active = &active
	}

	reviews, err := s.repo.Reviews.ListForTitle(r.Context(), titleID, filters)
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponses(reviews))
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Review")
	if !ok {
		return
	}
	review, err := s.repo.Reviews.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Review")
	if !ok {
		return
	}
	review, err := s.repo.Reviews.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}

	if err := policy.ReviewWrite(auth.IdentityFrom(r.Context()), review.AuthorID); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req reviewUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	updated, err := s.repo.Reviews.Update(r.Context(), review.ID, repository.ReviewUpdateParams{
		Rating:      req.Rating,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(updated))
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Review")
	if !ok {
		return
	}
	review, err := s.repo.Reviews.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}

	if err := policy.ReviewWrite(auth.IdentityFrom(r.Context()), review.AuthorID); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	if err := s.repo.Reviews.Delete(r.Context(), review.ID); err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReviewsByUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "username query parameter is required")
		return
	}

	reviews, err := s.repo.Reviews.ListByUsername(r.Context(), username)
	if err != nil {
		s.respondRepoError(w, err, "Review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponses(reviews))
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:          review.ID,
		TitleID:     review.TitleID,
		Author:      review.AuthorUsername,
		Rating:      review.Rating,
		Description: review.Description,
		Active:      review.Active,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	return items
}
