package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// ProfileFollow 关注作者
// @Summary Follow an author (idempotent)
// @Tags relations
// @Param username path string true "author username"
// @Produce json
// @Success 302 {string} string "redirect to the author's profile"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow/ [get]
func (h *Handler) ProfileFollow(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	username := c.Param("username")
	author, err := h.relations.Follow(c.Request.Context(), user.ID, username)
	if err != nil && !errors.Is(err, service.ErrFollowSelf) {
		// Following yourself is a silent no-op; the redirect happens anyway.
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, profileURL(author.Username))
}

// ProfileUnfollow 取消关注
// @Summary Unfollow an author; absence of the edge is a no-op
// @Tags relations
// @Param username path string true "author username"
// @Produce json
// @Success 302 {string} string "redirect to the author's profile"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow/ [get]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	username := c.Param("username")
	author, err := h.relations.Unfollow(c.Request.Context(), user.ID, username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, profileURL(author.Username))
}
