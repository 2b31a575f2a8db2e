package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhub/internal/pkg/response"
	"studyhub/internal/storage"
)

const ctxScope = "staging_scope"

// StageUploads drains the multipart field's files into the staging area and
// binds them to a request-scoped cleanup. The scope's release is armed before
// the handler chain runs, so any rejecting return path (auth, quota, DB
// failure) still deletes whatever was staged; files moved by a commit are
// skipped. The transport has already received the bytes by the time handlers
// can reject, which is why staging sits in front of the business checks.
//
// Requests without a multipart body pass through with an empty scope.
func StageUploads(stager *storage.Stager, field string, maxCount int) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := storage.NewScope()
		c.Set(ctxScope, scope)
		defer scope.Release()

		form, err := c.MultipartForm()
		if err == nil && form != nil {
			files := form.File[field]
			if maxCount > 0 && len(files) > maxCount {
				files = files[:maxCount]
			}
			for _, fh := range files {
				staged, err := stager.Stage(fh)
				if err != nil {
					response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to receive upload")
					c.Abort()
					return
				}
				scope.Add(staged)
			}
		}

		c.Next()
	}
}

// ScopeFrom returns the request's staging scope. Handlers registered behind
// StageUploads always find one.
func ScopeFrom(c *gin.Context) *storage.Scope {
	if v, ok := c.Get(ctxScope); ok {
		if scope, ok := v.(*storage.Scope); ok {
			return scope
		}
	}
	return storage.NewScope()
}
