package api

import (
	"encoding/json/v2"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubreviewapp/clubreview-server/internal/http/response"
	"github.com/clubreviewapp/clubreview-server/internal/service"
)

// createClubRequest is the body for registering a club.
type createClubRequest struct {
	Code        string   `json:"code" validate:"required,max=64"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=4096"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required,max=255"`
}

// updateClubRequest is the body for modifying a club. Absent fields are
// left unchanged; a present tags array replaces the tag set wholly.
type updateClubRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=4096"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required,max=255"`
}

// handleListClubs returns every club in the directory.
func (s *Server) handleListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := s.clubService.ListClubs(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, clubs, s.logger.Logger)
}

// handleCreateClub registers a new club.
func (s *Server) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req createClubRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	club, err := s.clubService.CreateClub(r.Context(), service.CreateClubInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, club, s.logger.Logger)
}

// handleSearchClubs returns clubs whose name contains the path segment,
// case-insensitively. A valid query that matches nothing yields a bare
// 204, not an empty list.
func (s *Server) handleSearchClubs(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")

	clubs, err := s.clubService.SearchClubs(r.Context(), query)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, clubs, s.logger.Logger)
}

// handleUpdateClub modifies the club matching the code path segment.
// The code and the favorite count are immutable: a body naming either is
// rejected with 405 before anything else is looked at.
func (s *Server) handleUpdateClub(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}
	for _, field := range []string{"code", "favorited"} {
		if _, present := raw[field]; present {
			response.MethodNotAllowed(w, "Field '"+field+"' cannot be modified", s.logger.Logger)
			return
		}
	}

	var req updateClubRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	club, err := s.clubService.UpdateClub(r.Context(), code, service.UpdateClubInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, club, s.logger.Logger)
}
