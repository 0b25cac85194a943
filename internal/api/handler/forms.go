package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// postForm is the create/edit submission. Group and image are optional;
// group must reference an existing group when present.
type postForm struct {
	Text  string `validate:"required"`
	Group string
}

// commentForm is the add-comment submission.
type commentForm struct {
	Text string `validate:"required"`
}

// formContext is the "form" object templates render: current field values
// plus per-field error messages.
func formContext(fields map[string]string, errs map[string]string) gin.H {
	if errs == nil {
		errs = map[string]string{}
	}
	return gin.H{"fields": fields, "errors": errs}
}

func emptyPostForm() gin.H {
	return formContext(map[string]string{"text": "", "group": ""}, nil)
}

func emptyCommentForm() gin.H {
	return formContext(map[string]string{"text": ""}, nil)
}

// fieldErrors flattens validator output into template-facing messages.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[strings.ToLower(fe.Field())] = "this field is required"
		}
		return out
	}
	if err != nil {
		out["__all__"] = err.Error()
	}
	return out
}

// hasSubmission reports whether the request carries any form data at all.
// A bare POST behaves like a GET: the empty form renders without errors.
func hasSubmission(c *gin.Context) bool {
	if c.Request.Method != http.MethodPost {
		return false
	}
	// ParseMultipartForm also parses urlencoded bodies; ErrNotMultipart is
	// expected for those and harmless.
	_ = c.Request.ParseMultipartForm(32 << 20)
	if len(c.Request.PostForm) > 0 {
		return true
	}
	return c.Request.MultipartForm != nil && len(c.Request.MultipartForm.File) > 0
}
