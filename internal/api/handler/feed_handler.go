package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/pagination"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Index 首页动态流
// @Summary Index feed, newest first, served through the page cache
// @Tags feeds
// @Param page query int false "page number" default(1)
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.feeds.Index(c.Request.Context(), page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Render(c, tmplIndex, gin.H{"page_obj": pageObj})
}

// GroupFeed 小组动态流
// @Summary Group feed, oldest first
// @Tags feeds
// @Param slug path string true "group slug"
// @Param page query int false "page number" default(1)
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Failure 404 {object} response.Response
// @Router /group/{slug}/ [get]
func (h *Handler) GroupFeed(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	group, pageObj, err := h.feeds.Group(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Render(c, tmplGroupList, gin.H{"group": group, "page_obj": pageObj})
}

// ProfileFeed 作者主页动态流
// @Summary Author profile feed
// @Tags feeds
// @Param username path string true "author username"
// @Param page query int false "page number" default(1)
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Failure 404 {object} response.Response
// @Router /profile/{username}/ [get]
func (h *Handler) ProfileFeed(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))
	author, pageObj, err := h.feeds.Profile(c.Request.Context(), c.Param("username"), page)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	context := gin.H{"author": author, "page_obj": pageObj}
	if user, ok := middleware.CurrentUser(c); ok {
		following, err := h.relations.IsFollowing(c.Request.Context(), user.ID, author.ID)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		context["following"] = following
	}
	response.Render(c, tmplProfile, context)
}

// FollowFeed 关注作者的动态流
// @Summary Posts by authors the caller follows
// @Tags feeds
// @Param page query int false "page number" default(1)
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Router /follow/ [get]
func (h *Handler) FollowFeed(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	page := pagination.ParsePage(c.Query("page"))
	pageObj, err := h.feeds.Following(c.Request.Context(), user.ID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Render(c, tmplFollow, gin.H{"page_obj": pageObj})
}
