package course

import (
	"errors"
	"net/http"
	"os"

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

// RegisterRoutes wires the authenticated course endpoints. The create route
// must sit behind the upload staging middleware (field "attachments").
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, stageUploads gin.HandlerFunc) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/courses", stageUploads, h.Create)
		teacher.GET("/courses", h.ListInfo)
		teacher.DELETE("/courses/:idx", h.Delete)
		teacher.PUT("/courses/:idx/toggle", h.ToggleActive)
		teacher.PUT("/courses/:idx", h.Update)
		teacher.GET("/courses/:idx/students", h.Roster)
	}

	rg.GET("/learn/courses", h.ListCards)
}

// RegisterPublicRoutes wires the unauthenticated binary stream endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses/:idx/banner/:filename", h.StreamBanner)
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		Idx:   c.GetString(middleware.CtxUserIdx),
		Role:  domain.UserRole(c.GetString(middleware.CtxRole)),
		Group: c.GetString(middleware.CtxGroup),
	}
}

// respondServiceError maps the shared course/quota error set onto the HTTP
// envelope. Storage quota maps to 507, count quotas to 409.
func respondServiceError(c *gin.Context, err error, fallback string) {
	if qe, ok := quota.IsExceeded(err); ok {
		status := http.StatusConflict
		if qe.Dimension == quota.DimStorage {
			status = http.StatusInsufficientStorage
		}
		response.ErrorWithDetails(c, status, "QUOTA_EXCEEDED", qe.Error(), gin.H{
			"dimension": qe.Dimension,
			"limit":     qe.Limit,
		})
		return
	}
	switch {
	case errors.Is(err, ErrInvalidIdx):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid course id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, quota.ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", "Group does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Course id and name are required")
		return
	}

	scope := middleware.ScopeFrom(c)
	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req, scope.Files())
	if err != nil {
		respondServiceError(c, err, "Course creation failed")
		return
	}

	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) ListInfo(c *gin.Context) {
	courses, err := h.service.ListInfo(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Course lookup failed")
		return
	}
	response.Success(c, http.StatusOK, courses)
}

func (h *Handler) ListCards(c *gin.Context) {
	cards, err := h.service.ListCards(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Course lookup failed")
		return
	}
	response.Success(c, http.StatusOK, cards)
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Course deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": deleted.Idx, "course_id": deleted.Code})
}

func (h *Handler) ToggleActive(c *gin.Context) {
	updated, err := h.service.ToggleActive(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Course update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": updated.Idx, "active": updated.Active})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Course id and name are required")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorFrom(c), c.Param("idx"), req)
	if err != nil {
		respondServiceError(c, err, "Course update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": updated.Idx, "course_id": updated.Code})
}

func (h *Handler) Roster(c *gin.Context) {
	students, err := h.service.Roster(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Roster lookup failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student_list": students})
}

// StreamBanner serves the banner file directly; binary endpoints use plain
// status codes instead of the JSON envelope.
func (h *Handler) StreamBanner(c *gin.Context) {
	path, err := h.service.BannerPath(c.Request.Context(), c.Param("idx"), c.Param("filename"))
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
