package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/foodmart/internal/models"
)

// UserService is the registration/login surface used by the handlers
type UserService interface {
	// Register creates a new user and returns a token
	Register(ctx context.Context, login, password, role string) (string, error)
	// Login verifies credentials and returns a token
	Login(ctx context.Context, login, password string) (string, error)
}

// UserHandler represents HTTP handler for user-related requests
type UserHandler struct {
	svc UserService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func validRole(role string) bool {
	switch role {
	case models.RoleCustomer, models.RoleDriver, models.RoleRestaurant, models.RoleAdmin:
		return true
	}
	return false
}

// Register creates a new account
// 200 — registered, token returned
// 400 — malformed body or unknown role
// 409 — login already taken
func (uh *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Login == "" || req.Password == "" || !validRole(req.Role) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		token, err := uh.svc.Register(r.Context(), req.Login, req.Password, req.Role)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "login already taken", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login verifies credentials
// 200 — token returned
// 401 — invalid login or password
func (uh *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		token, err := uh.svc.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
