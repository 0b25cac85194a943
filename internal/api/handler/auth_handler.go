package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/auth"
	"github.com/d60-Lab/microblog/pkg/response"
)

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginForm renders the login page the auth redirects point at.
func (h *Handler) LoginForm(c *gin.Context) {
	response.Render(c, tmplLogin, gin.H{"next": c.Query("next")})
}

// Login 登录换取会话令牌
// @Summary Exchange credentials for a session token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, user, err := h.authMgr.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
	response.Success(c, gin.H{"token": token, "username": user.Username})
}
