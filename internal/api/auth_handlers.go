package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/clubreviewapp/clubreview-server/internal/http/response"
	"github.com/clubreviewapp/clubreview-server/internal/service"
)

// updateProfileRequest is the body for modifying the authenticated
// user's own profile. Absent fields are left unchanged. Favorite adds
// the club with exactly that code to the favorites set.
type updateProfileRequest struct {
	Year     *int    `json:"year" validate:"omitempty,gte=1,lte=8"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8,max=1024"`
	Favorite *string `json:"favorite" validate:"omitempty,max=64"`
}

// handleSignup registers a new account and returns an access token.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, resp, s.logger.Logger)
}

// handleLogin verifies credentials and returns a fresh access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, resp, s.logger.Logger)
}

// handleLogout acknowledges a logout. Access tokens are stateless and
// short-lived; the client discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{"message": "logged out"}, s.logger.Logger)
}

// handleGetOwnProfile returns the authenticated user's profile.
func (s *Server) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())

	profile, err := s.userService.GetProfileByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}
	response.Success(w, profile, s.logger.Logger)
}

// handleUpdateProfile modifies the authenticated user's profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger.Logger)
		return
	}

	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	profile, err := s.userService.UpdateProfile(r.Context(), getUserID(r.Context()), service.UpdateProfileInput{
		Year:         req.Year,
		Email:        req.Email,
		Password:     req.Password,
		FavoriteCode: req.Favorite,
	})
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, profile, s.logger.Logger)
}
