package post

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"
	"studyhub/internal/pkg/response"
	"studyhub/internal/quota"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the authenticated post endpoints. Creating and
// deleting posts is teacher-only; likes and comments are open to every
// group member.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, stageUploads gin.HandlerFunc) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/posts", stageUploads, h.Create)
		teacher.DELETE("/posts/:idx", h.Delete)
	}

	rg.GET("/posts", h.Feed)
	rg.GET("/posts/:idx", h.Get)
	rg.PUT("/posts/:idx", h.Update)
	rg.PUT("/posts/:idx/like", h.ToggleLike)
	rg.POST("/posts/:idx/comments", h.Comment)
}

// RegisterPublicRoutes wires the unauthenticated binary stream endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts/:idx/images/:filename", h.StreamImage)
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		Idx:   c.GetString(middleware.CtxUserIdx),
		Role:  domain.UserRole(c.GetString(middleware.CtxRole)),
		Group: c.GetString(middleware.CtxGroup),
	}
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	if qe, ok := quota.IsExceeded(err); ok {
		response.ErrorWithDetails(c, http.StatusInsufficientStorage, "QUOTA_EXCEEDED", qe.Error(), gin.H{
			"dimension": qe.Dimension,
			"limit":     qe.Limit,
		})
		return
	}
	switch {
	case errors.Is(err, ErrInvalidIdx):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid post id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, quota.ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", "Group does not exist")
	case errors.Is(err, ErrEmptyPost):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A post needs content or at least one image")
	case errors.Is(err, ErrNotCreator):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the creator can modify this post")
	case errors.Is(err, ErrInvalidFingerprint):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid comment fingerprint")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid post")
		return
	}

	scope := middleware.ScopeFrom(c)
	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req, scope.Files())
	if err != nil {
		respondServiceError(c, err, "Post creation failed")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Feed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	posts, err := h.service.Feed(c.Request.Context(), actorFrom(c), page)
	if err != nil {
		respondServiceError(c, err, "Feed lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"page": page, "posts": posts})
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Post lookup failed")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx")); err != nil {
		respondServiceError(c, err, "Post deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": c.Param("idx")})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Post content is required")
		return
	}

	updated, err := h.service.UpdateContent(c.Request.Context(), actorFrom(c), c.Param("idx"), req)
	if err != nil {
		respondServiceError(c, err, "Post update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": updated.Idx, "content": updated.Content})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	liked, count, err := h.service.ToggleLike(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Like update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked, "like_count": count})
}

func (h *Handler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Comment message and fingerprint are required")
		return
	}

	updated, err := h.service.Comment(c.Request.Context(), actorFrom(c), c.Param("idx"), req)
	if err != nil {
		respondServiceError(c, err, "Comment failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"idx": updated.Idx, "comment_count": len(updated.Comments)})
}

// StreamImage serves the image file directly; binary endpoints use plain
// status codes instead of the JSON envelope.
func (h *Handler) StreamImage(c *gin.Context) {
	path, err := h.service.ImagePath(c.Request.Context(), c.Param("idx"), c.Param("filename"))
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	c.File(path)
}
