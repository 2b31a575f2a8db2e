package studyplan

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

// RegisterRoutes wires the study plan endpoints. Every group member can
// read the plan list and statistics; managing plans is teacher-only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	teacher := rg.Group("/", middleware.TeacherOnly())
	{
		teacher.POST("/study-plans", h.Create)
		teacher.PUT("/study-plans/:idx", h.Update)
		teacher.DELETE("/study-plans/:idx", h.Delete)
		teacher.PUT("/study-plans/:idx/sessions", h.RecordSession)
		teacher.PUT("/study-plans/:idx/start", h.Start)
	}

	rg.GET("/study-plans", h.List)
	rg.GET("/study-plans/statistics", h.Statistics)
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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid plan id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Plan not found")
	case errors.Is(err, ErrEmptyPlan):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Plan date and content are required")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid plan date")
	case errors.Is(err, ErrPlanFinished):
		response.Error(c, http.StatusConflict, "PLAN_FINISHED", "A finished plan accepts no further sessions")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Plan date and content are required")
		return
	}

	created, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondServiceError(c, err, "Plan creation failed")
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *Handler) List(c *gin.Context) {
	plans, err := h.service.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Plan lookup failed")
		return
	}
	response.Success(c, http.StatusOK, plans)
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Statistics lookup failed")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Plan date and content are required")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actorFrom(c), c.Param("idx"), req)
	if err != nil {
		respondServiceError(c, err, "Plan update failed")
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("idx")); err != nil {
		respondServiceError(c, err, "Plan deletion failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"idx": c.Param("idx")})
}

func (h *Handler) RecordSession(c *gin.Context) {
	var req RecordSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Session start and stop times are required")
		return
	}

	updated, err := h.service.RecordSession(c.Request.Context(), actorFrom(c), c.Param("idx"), req)
	if err != nil {
		respondServiceError(c, err, "Session recording failed")
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler) Start(c *gin.Context) {
	updated, err := h.service.Start(c.Request.Context(), actorFrom(c), c.Param("idx"))
	if err != nil {
		respondServiceError(c, err, "Plan update failed")
		return
	}
	response.Success(c, http.StatusOK, updated)
}
