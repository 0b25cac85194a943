package handler

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

func detailURL(postID string) string { return "/posts/" + postID + "/" }

func profileURL(username string) string { return "/profile/" + username + "/" }

// PostDetail 帖子详情
// @Summary Post detail with comments
// @Tags posts
// @Param post_id path string true "post id"
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/ [get]
func (h *Handler) PostDetail(c *gin.Context) {
	detail, err := h.posts.Detail(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Render(c, tmplPostDetail, gin.H{
		"post":              detail.Post,
		"author_post_count": detail.AuthorPostCount,
		"comments":          detail.Comments,
		"form":              emptyCommentForm(),
	})
}

// PostCreate 创建帖子
// @Summary Create a post (form on GET, submission on POST)
// @Tags posts
// @Accept mpfd
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Failure 400 {object} response.Response{data=response.Page}
// @Router /create/ [post]
func (h *Handler) PostCreate(c *gin.Context) {
	if !hasSubmission(c) {
		response.Render(c, tmplCreatePost, gin.H{"form": emptyPostForm()})
		return
	}
	user, _ := middleware.CurrentUser(c)

	form := postForm{
		Text:  strings.TrimSpace(c.PostForm("text")),
		Group: strings.TrimSpace(c.PostForm("group")),
	}
	fields := map[string]string{"text": form.Text, "group": form.Group}
	if err := validate.Struct(form); err != nil {
		response.RenderStatus(c, 400, tmplCreatePost, gin.H{
			"form": formContext(fields, fieldErrors(err)),
		})
		return
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if _, err := h.posts.Create(c.Request.Context(), user.ID, service.PostInput{
		Text:    form.Text,
		GroupID: form.Group,
		Image:   imagePath,
	}); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.RenderStatus(c, 400, tmplCreatePost, gin.H{
				"form": formContext(fields, map[string]string{"group": "select a valid group"}),
			})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, profileURL(user.Username))
}

// PostEdit 编辑帖子（仅作者）
// @Summary Edit a post; non-authors are redirected to the detail page
// @Tags posts
// @Param post_id path string true "post id"
// @Accept mpfd
// @Produce json
// @Success 200 {object} response.Response{data=response.Page}
// @Failure 404 {object} response.Response
// @Router /posts/{post_id}/edit/ [post]
func (h *Handler) PostEdit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	postID := c.Param("post_id")

	post, err := h.posts.GetForEdit(c.Request.Context(), user.ID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c)
		case errors.Is(err, service.ErrNotAuthor):
			// Not the author: no error surfaced, just back to the post.
			response.Redirect(c, detailURL(postID))
		default:
			response.InternalError(c, err)
		}
		return
	}

	if !hasSubmission(c) {
		group := ""
		if post.GroupID != nil {
			group = *post.GroupID
		}
		response.Render(c, tmplCreatePost, gin.H{
			"form":    formContext(map[string]string{"text": post.Text, "group": group}, nil),
			"is_edit": true,
			"post_id": postID,
		})
		return
	}

	form := postForm{
		Text:  strings.TrimSpace(c.PostForm("text")),
		Group: strings.TrimSpace(c.PostForm("group")),
	}
	fields := map[string]string{"text": form.Text, "group": form.Group}
	renderInvalid := func(errs map[string]string) {
		response.RenderStatus(c, 400, tmplCreatePost, gin.H{
			"form":    formContext(fields, errs),
			"is_edit": true,
			"post_id": postID,
		})
	}
	if err := validate.Struct(form); err != nil {
		renderInvalid(fieldErrors(err))
		return
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	if _, err := h.posts.Update(c.Request.Context(), user.ID, postID, service.PostInput{
		Text:    form.Text,
		GroupID: form.Group,
		Image:   imagePath,
	}); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			renderInvalid(map[string]string{"group": "select a valid group"})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Redirect(c, detailURL(postID))
}

// saveImage stores an optional uploaded image under the media directory and
// returns its media-relative path, or "" when the submission has no file.
func (h *Handler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.storeUpload(c, file)
}

func (h *Handler) storeUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	rel := filepath.Join("posts", uuid.New().String()+filepath.Ext(file.Filename))
	dst := filepath.Join(h.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return rel, nil
}
