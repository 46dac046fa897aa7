package httpserver

import (
	"net/http"

	"github.com/streamvault/watchlist-api/internal/auth"
	"github.com/streamvault/watchlist-api/internal/domain"
	"github.com/streamvault/watchlist-api/internal/policy"
	"github.com/streamvault/watchlist-api/internal/repository"
)

type platformRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	About   string `json:"about" validate:"max=2000"`
	Website string `json:"website" validate:"omitempty,url,max=255"`
}

type platformResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	About   string `json:"about"`
	Website string `json:"website"`
}

func (s *Server) handleListPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := s.repo.Platforms.List(r.Context())
	if err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}

	items := make([]platformResponse, 0, len(platforms))
	for _, p := range platforms {
		items = append(items, toPlatformResponse(p))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreatePlatform(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req platformRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	platform, err := s.repo.Platforms.Create(r.Context(), repository.PlatformParams{
		Name:    req.Name,
		About:   req.About,
		Website: req.Website,
	})
	if err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}
	s.respondJSON(w, http.StatusCreated, toPlatformResponse(platform))
}

func (s *Server) handleGetPlatform(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "Streaming platform")
	if !ok {
		return
	}
	platform, err := s.repo.Platforms.GetByID(r.Context(), id)
	if err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}
	s.respondJSON(w, http.StatusOK, toPlatformResponse(platform))
}

func (s *Server) handleUpdatePlatform(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	var req platformRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	id, ok := s.pathID(w, r, "Streaming platform")
	if !ok {
		return
	}
	platform, err := s.repo.Platforms.Update(r.Context(), id, repository.PlatformParams{
		Name:    req.Name,
		About:   req.About,
		Website: req.Website,
	})
	if err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}
	s.respondJSON(w, http.StatusOK, toPlatformResponse(platform))
}

func (s *Server) handleDeletePlatform(w http.ResponseWriter, r *http.Request) {
	if err := policy.CatalogWrite(auth.IdentityFrom(r.Context())); err != nil {
		s.respondPolicyError(w, err)
		return
	}

	id, ok := s.pathID(w, r, "Streaming platform")
	if !ok {
		return
	}
	if err := s.repo.Platforms.Delete(r.Context(), id); err != nil {
		s.respondRepoError(w, err, "Streaming platform")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toPlatformResponse(platform domain.Platform) platformResponse {
	return platformResponse{
		ID:      platform.ID,
		Name:    platform.Name,
		About:   platform.About,
		Website: platform.Website,
	}
}
