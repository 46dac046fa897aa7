package httpserver

import (
	"errors"
	"net/http"

	"github.com/streamvault/watchlist-api/internal/auth"
	"github.com/streamvault/watchlist-api/internal/domain"
	"github.com/streamvault/watchlist-api/internal/repository"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}
	if req.Password != req.Password2 {
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Passwords do not match")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("hash password")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register account")
		return
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Username or email already exists")
			return
		}
		s.respondRepoError(w, err, "User")
		return
	}

	// Token provisioning happens here, synchronously after account
	// creation, rather than through any framework signal.
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("issue token after registration")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	s.respondJSON(w, http.StatusCreated, registerResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	user, err := s.repo.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
			return
		}
		s.respondRepoError(w, err, "User")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("issue token on login")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}
	s.respondJSON(w, http.StatusOK, loginResponse{Token: token})
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
