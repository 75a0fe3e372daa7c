package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth   AuthService
	logger logging.Logger
}

type credentialsRequest struct {
	Email  string `json:"email" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

type refreshRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type revokeRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type meResponse struct {
	Subject   string   `json:"sub"`
	Email     string   `json:"email,omitempty"`
	Roles     []string `json:"roles"`
	Issuer    string   `json:"iss"`
	Audience  []string `json:"aud"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Secret)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	pair, err := h.auth.Register(c.Request.Context(), req.Email, req.Secret)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

func (h *Handler) RegisterGuest(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	pair, err := h.auth.RegisterGuest(c.Request.Context(), req.Email, req.Secret)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) Revoke(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req revokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	if err := h.auth.Revoke(c.Request.Context(), p, req.RefreshToken); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	cl := p.Claims
	c.JSON(http.StatusOK, meResponse{
		Subject:   cl.Subject,
		Email:     cl.Email,
		Roles:     cl.Roles,
		Issuer:    cl.Issuer,
		Audience:  cl.Audience,
		IssuedAt:  cl.IssuedAt.Unix(),
		ExpiresAt: cl.ExpiresAt.Unix(),
	})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
}

// writeError maps service errors the same way the gRPC transport does.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		badRequest(c)
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already_exists"})
	case errors.Is(err, common.ErrorInternal):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	default:
		abortUnauthorized(c)
	}
}
