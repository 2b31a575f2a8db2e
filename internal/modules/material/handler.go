package material

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"
	"studyhub/internal/pkg/response"
	"studyhub/internal/quota"
	"studyhub/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the material endpoints under the course tree. Mutating
// routes are teacher-only; the stream route applies role visibility inside
// the service instead.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, stageUploads gin.HandlerFunc) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/courses/:idx/materials", stageUploads, h.Create)
		teacher.PUT("/courses/:idx/materials/:material_id", stageUploads, h.Update)
		teacher.DELETE("/courses/:idx/materials/:material_id", h.Delete)
	}

	rg.GET("/courses/:idx/materials", h.List)
	rg.GET("/courses/:idx/materials/:material_id", h.Stream)
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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
	case errors.Is(err, ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Material not found")
	case errors.Is(err, ErrNoFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A document file is required")
	case errors.Is(err, quota.ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", "Group does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A material title is required")
		return
	}

	var staged = middleware.ScopeFrom(c).Files()
	if len(staged) == 0 {
		respondServiceError(c, ErrNoFile, "")
		return
	}

	att, err := h.service.Create(c.Request.Context(), actorFrom(c), c.Param("idx"), req.Title, staged[0])
	if err != nil {
		respondServiceError(c, err, "Material upload failed")
		return
	}
	response.Success(c, http.StatusCreated, att)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateMaterialRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid material update")
		return
	}

	var staged *storage.StagedFile
	if files := middleware.ScopeFrom(c).Files(); len(files) > 0 {
		staged = files[0]
	}

	att, err := h.service.Replace(c.Request.Context(), actorFrom(c), c.Param("idx"), c.Param("material_id"), req.Title, staged)
	if err != nil {
		respondServiceError(c, err, "Material update failed")
		return
	}
	response.Success(c, http.StatusOK, att)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx"), c.Param("material_id")); err != nil {
		respondServiceError(c, err, "Material deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"material_id": c.Param("material_id")})
}

func (h *Handler) List(c *gin.Context) {
	materials, err := h.service.List(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Material lookup failed")
		return
	}
	response.Success(c, http.StatusOK, materials)
}

// Stream serves the material file directly; binary endpoints use plain
// status codes instead of the JSON envelope.
func (h *Handler) Stream(c *gin.Context) {
	path, err := h.service.FilePath(c.Request.Context(), actorFrom(c), c.Param("idx"), c.Param("material_id"))
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	c.File(path)
}
