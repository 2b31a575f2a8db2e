package student

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"
	"studyhub/internal/pkg/response"
	"studyhub/internal/pkg/validator"
	"studyhub/internal/quota"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the student account endpoints, all teacher-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/students", h.Create)
		teacher.GET("/students", h.List)
		teacher.DELETE("/students/:idx", h.Delete)
		teacher.PUT("/students/:idx/toggle", h.ToggleActive)
	}
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
		response.ErrorWithDetails(c, http.StatusConflict, "QUOTA_EXCEEDED", qe.Error(), gin.H{
			"dimension": qe.Dimension,
			"limit":     qe.Limit,
		})
		return
	}
	switch {
	case errors.Is(err, ErrInvalidIdx):
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid student id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Student not found")
	case errors.Is(err, ErrDuplicate):
		response.Error(c, http.StatusConflict, "DUPLICATE", "Account already exists")
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, quota.ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", "Group does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Validate(req); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Account, password and name are required", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Account, password and name are required")
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondServiceError(c, err, "Student creation failed")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"idx": created.Idx, "account": created.Account})
}

func (h *Handler) List(c *gin.Context) {
	students, err := h.service.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Student lookup failed")
		return
	}
	response.Success(c, http.StatusOK, students)
}

func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Student deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": deleted.Idx, "account": deleted.Account})
}

func (h *Handler) ToggleActive(c *gin.Context) {
	updated, err := h.service.ToggleActive(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Student update failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": updated.Idx, "active": updated.Active})
}
