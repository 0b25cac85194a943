package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// AddComment 发表评论
// @Summary Comment on a post
// @Tags comments
// @Param post_id path string true "post id"
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 302 {string} string "redirect to post detail"
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	postID := c.Param("post_id")

	form := commentForm{Text: strings.TrimSpace(c.PostForm("text"))}
	if err := validate.Struct(form); err != nil {
		// Invalid text drops the attempt and lands back on the post without
		// surfacing field errors. The post must still exist, though.
		if _, derr := h.posts.Detail(c.Request.Context(), postID); derr != nil {
			if errors.Is(derr, service.ErrNotFound) {
				response.NotFound(c)
				return
			}
			response.InternalError(c, derr)
			return
		}
		response.Redirect(c, detailURL(postID))
		return
	}

	if _, err := h.comments.Add(c.Request.Context(), user.ID, postID, form.Text); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, detailURL(postID))
}
