package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kliang/packmate/backend/internal/domain"
	"github.com/kliang/packmate/backend/internal/middleware"
	"github.com/kliang/packmate/backend/internal/repo"
	"github.com/kliang/packmate/backend/internal/service"
)

// signupRequest is the body of POST /api/signup.
type signupRequest struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	Email             string `json:"email,omitempty"`
	Gender            string `json:"gender,omitempty"`
	FullName          string `json:"fullname,omitempty"`
	TravelPreferences string `json:"travel_preferences,omitempty"`
	ItemLike          string `json:"item_like,omitempty"`
}

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the signed token plus the user's profile.
type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// forgotPasswordRequest is the body of POST /api/forgot-password.
type forgotPasswordRequest struct {
	Username string `json:"username"`
}

// profilePatchRequest is the body of PUT /api/users/{uid}. Absent fields are
// left unchanged; present fields (including empty strings) overwrite.
type profilePatchRequest struct {
	Email             *string `json:"email"`
	Gender            *string `json:"gender"`
	FullName          *string `json:"fullname"`
	TravelPreferences *string `json:"travel_preferences"`
	ItemLike          *string `json:"item_like"`
}

// userResponse is the wire form of a user profile. The password hash never
// appears here.
type userResponse struct {
	UID               int64     `json:"uid"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	Gender            string    `json:"gender,omitempty"`
	FullName          string    `json:"fullname,omitempty"`
	TravelPreferences string    `json:"travel_preferences,omitempty"`
	ItemLike          string    `json:"item_like,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Signup handles POST /api/signup.
func (s *Server) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	user, err := s.accounts.Signup(r.Context(), service.SignupParams{
		Username:          req.Username,
		Password:          req.Password,
		Email:             req.Email,
		Gender:            req.Gender,
		FullName:          req.FullName,
		TravelPreferences: req.TravelPreferences,
		ItemLike:          req.ItemLike,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusCreated, userToResponse(user))
}

// Login handles POST /api/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	user, token, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, loginResponse{Token: token, User: userToResponse(user)})
}

// ForgotPassword handles POST /api/forgot-password.
// On success the response body confirms the mail was sent; the temporary
// password itself only travels by email.
func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.accounts.RecoverPassword(r.Context(), req.Username); err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]string{"message": "a temporary password has been sent to your email"})
}

// UpdateProfile handles PUT /api/users/{uid}. Users may only update their own
// profile; a mismatched id gets 403.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, err := strconv.ParseInt(chi.URLParam(r, "uid"), 10, 64)
	if err != nil {
		writeRequestError(w, "invalid user id")
		return
	}

	authedUID, ok := middleware.UserID(r.Context())
	if !ok || authedUID != uid {
		respond(w, http.StatusForbidden, ErrorResponse{Error: ErrorDetail{Code: "forbidden", Message: "cannot update another user's profile"}})
		return
	}

	var req profilePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body: "+err.Error())
		return
	}

	user, err := s.accounts.UpdateProfile(r.Context(), uid, repo.ProfilePatch{
		Email:             req.Email,
		Gender:            req.Gender,
		FullName:          req.FullName,
		TravelPreferences: req.TravelPreferences,
		ItemLike:          req.ItemLike,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respond(w, http.StatusOK, userToResponse(user))
}

// userToResponse converts a domain.User into its wire form.
func userToResponse(u domain.User) userResponse {
	return userResponse{
		UID:               u.UID,
		Username:          u.Username,
		Email:             u.Email,
		Gender:            u.Gender,
		FullName:          u.FullName,
		TravelPreferences: u.TravelPreferences,
		ItemLike:          u.ItemLike,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
