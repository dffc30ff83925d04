package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurorahq/akfeed/internal/auth"
	"github.com/aurorahq/akfeed/internal/store"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup: POST /v1/auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.svc.UserStore().GetUserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}
	user, err := h.svc.UserStore().CreateUser(ctx, req.Email, hash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := h.issuer.Token(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"user":       user,
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

// Signin: POST /v1/auth/signin
func (h *Handler) Signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.svc.UserStore().GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, expiresAt, err := h.issuer.Token(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user":       user,
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

// Me: GET /v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID := auth.UserID(c)
	user, err := h.svc.UserStore().GetUserByID(c.Request.Context(), userID)
	if err != nil {
		h.storeError(c, err, "account not found")
		return
	}
	role, err := h.svc.UserStore().GetUserRole(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"user": user, "role": role},
	})
}

// ListFavorites: GET /v1/favorites?limit=20
func (h *Handler) ListFavorites(c *gin.Context) {
	limit := parseLimit(c.DefaultQuery("limit", "20"))
	items, err := h.svc.ListFavorites(c.Request.Context(), auth.UserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meta": gin.H{"count": len(items), "limit": limit},
		"data": items,
	})
}

// AddFavorite: POST /v1/favorites/:id
func (h *Handler) AddFavorite(c *gin.Context) {
	if err := h.svc.AddFavorite(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.storeError(c, err, "news item not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFavorite: DELETE /v1/favorites/:id
func (h *Handler) RemoveFavorite(c *gin.Context) {
	if err := h.svc.RemoveFavorite(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.storeError(c, err, "favorite not found")
		return
	}
	c.Status(http.StatusNoContent)
}
