package handlers

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Selvaprakash-V/SIH2K25/middleware"
	"github.com/Selvaprakash-V/SIH2K25/models"
	"github.com/Selvaprakash-V/SIH2K25/store"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondStoreError(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	user, err := h.store.InsertUser(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		State:        req.State,
		District:     req.District,
		PasswordHash: string(hash),
	})
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.UserLogin
	if err := decodeJSON(r, &req); err != nil {
		h.respondStoreError(w, err)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err == store.ErrNotFound {
		h.sendErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.sendErrorResponse(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	ttl := time.Duration(h.cfg.TokenTTLHours) * time.Hour
	token, err := middleware.NewToken(h.cfg.JWTSecret, ttl, user)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
