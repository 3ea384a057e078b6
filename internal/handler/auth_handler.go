package handler

import (
	"net/http"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    user.Service
	secure   bool
	tokenTTL int
}

func NewAuthHandler(users user.Service, secureCookie bool, tokenTTLSeconds int) *AuthHandler {
	return &AuthHandler{users: users, secure: secureCookie, tokenTTL: tokenTTLSeconds}
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  *user.Response `json:"user"`
}

func (h *AuthHandler) respond(c *gin.Context, res *user.AuthResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, res.Token, h.tokenTTL, "/", "", h.secure, true)
	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: user.ToResponse(res.User)})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.users.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, res)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.users.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p := principal(c)
	if p == nil {
		respondError(c, apperror.Unauthorized("Authentication required"))
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse(u))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}
