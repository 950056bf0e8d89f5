package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubreviewapp/clubreview-server/internal/http/response"
)

// handleListTags returns every tag with its club count.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.ListTags(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, tags, s.logger.Logger)
}

// handleGetTag returns a single tag with the names of the clubs carrying
// it. The name path segment is matched case-insensitively.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	tag, err := s.tagService.GetTagByName(r.Context(), name)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, tag, s.logger.Logger)
}
