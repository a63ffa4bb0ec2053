package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/catalog-api/internal/auth"
	"github.com/hongminglow/catalog-api/internal/http/respond"
	"github.com/hongminglow/catalog-api/internal/models/dto"
)

// AuthHandler owns the register, login and profile endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register attaches auth routes under /api/auth. requireAuth guards the
// profile route.
func (h *AuthHandler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.With(requireAuth).Get("/profile", h.handleProfile)
	})
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			respond.Error(w, http.StatusBadRequest, "Password must be at most 72 bytes")
			return
		}
		respondStoreError(w, r, err, "User not found")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User created successfully",
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondStoreError(w, r, err, "User not found")
		return
	}

	respond.JSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.svc.Profile(r.Context(), claims.ID)
	if err != nil {
		respondStoreError(w, r, err, "User not found")
		return
	}
	respond.JSON(w, http.StatusOK, dto.ProfileResponse{User: user})
}
