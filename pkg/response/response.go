package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/pkg/logger"
)

// Response is the JSON envelope every endpoint produces.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Page is what a view produces for the external renderer: the template to
// render and the context mapping to render it with.
type Page struct {
	Template string                 `json:"template"`
	Context  map[string]interface{} `json:"context"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// Render emits a (template, context) pair with HTTP 200. The renderer in
// front of this service turns the pair into HTML.
func Render(c *gin.Context, template string, context map[string]interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "ok",
		Data:    Page{Template: template, Context: context},
	})
}

// RenderStatus is Render with an explicit status code (form re-renders after
// a validation failure respond 400 while still carrying the page pair).
func RenderStatus(c *gin.Context, status int, template string, context map[string]interface{}) {
	c.JSON(status, Response{
		Code:    status,
		Message: http.StatusText(status),
		Data:    Page{Template: template, Context: context},
	})
}

// Redirect issues an HTTP 302 to location.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: msg})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: "not found"})
}

func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: "internal error"})
}
