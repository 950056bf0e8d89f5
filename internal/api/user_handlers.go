package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubreviewapp/clubreview-server/internal/http/response"
)

// handleGetUser returns the public profile for a handle, matched
// case-insensitively. The password hash is never part of the payload.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	profile, err := s.userService.GetProfile(r.Context(), handle)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, profile, s.logger.Logger)
}
