package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/pdfbrief/pdfbrief/internal/pkg/errors"
	"github.com/pdfbrief/pdfbrief/internal/pkg/response"
	"github.com/pdfbrief/pdfbrief/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Username and password required")
		return
	}
	_, pair, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{
		"refresh": pair.Refresh,
		"access":  pair.Access,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password required")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Username and password required")
		return
	}
	_, pair, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"refresh": pair.Refresh,
		"access":  pair.Access,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		handleError(c, appErr.ErrUnauthorized)
		return
	}
	access, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"access": access})
}
