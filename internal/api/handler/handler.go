package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/auth"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Template names the handlers hand to the external renderer.
const (
	tmplIndex      = "posts/index.html"
	tmplGroupList  = "posts/group_list.html"
	tmplProfile    = "posts/profile.html"
	tmplPostDetail = "posts/post_detail.html"
	tmplCreatePost = "posts/create_post.html"
	tmplFollow     = "posts/follow.html"
	tmplLogin      = "users/login.html"
)

type Handler struct {
	feeds     service.FeedService
	posts     service.PostService
	comments  service.CommentService
	relations service.RelationshipService
	authMgr   *auth.Manager
	db        *gorm.DB
	mediaDir  string
}

func New(
	feeds service.FeedService,
	posts service.PostService,
	comments service.CommentService,
	relations service.RelationshipService,
	authMgr *auth.Manager,
	db *gorm.DB,
	mediaDir string,
) *Handler {
	return &Handler{
		feeds:     feeds,
		posts:     posts,
		comments:  comments,
		relations: relations,
		authMgr:   authMgr,
		db:        db,
		mediaDir:  mediaDir,
	}
}

// Health reports liveness, including a database ping.
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"status": "ok"})
}
