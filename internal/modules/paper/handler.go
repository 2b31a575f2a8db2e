package paper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"
	"studyhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the exam paper record endpoints. The list is open
// to every group member; adding and deleting records is teacher-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/papers", h.Add)
		teacher.DELETE("/papers/:idx", h.Delete)
	}

	rg.GET("/papers", h.List)
}

func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		Idx:   c.GetString(middleware.CtxUserIdx),
		Role:  domain.UserRole(c.GetString(middleware.CtxRole)),
		Group: c.GetString(middleware.CtxGroup),
	}
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidIdx):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid record id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case errors.Is(err, ErrEmptyName):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Record name is required")
	case errors.Is(err, ErrNotCreator):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the creator can delete this record")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Record lookup failed")
		return
	}
	response.Success(c, http.StatusOK, records)
}

func (h *Handler) Add(c *gin.Context) {
	var req AddPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Record name is required")
		return
	}

	created, err := h.service.Add(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondServiceError(c, err, "Record creation failed")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx")); err != nil {
		respondServiceError(c, err, "Record deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": c.Param("idx")})
}
