package userinfo

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"
	"studyhub/internal/pkg/response"
	"studyhub/internal/pkg/validator"
	"studyhub/internal/quota"
	"studyhub/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the authenticated profile endpoints. Profile and
// avatar updates go through the upload staging middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, stageUploads gin.HandlerFunc) {
	rg.GET("/me", h.Get)
	rg.PUT("/me", stageUploads, h.UpdateProfile)
	rg.PUT("/me/avatar", stageUploads, h.UpdateAvatar)
}

// RegisterPublicRoutes wires the unauthenticated binary stream endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/:idx/avatar", h.StreamAvatar)
	rg.GET("/users/:idx/sticker", h.StreamSticker)
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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrVisitor):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "The visitor account is read-only")
	case errors.Is(err, ErrNoFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "An image file is required")
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, quota.ErrGroupNotFound):
		response.Error(c, http.StatusNotFound, "GROUP_NOT_FOUND", "Group does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func (h *Handler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondServiceError(c, err, "Profile lookup failed")
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		if details := validator.Validate(req); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile update", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile update")
		return
	}

	var sticker *storage.StagedFile
	if files := middleware.ScopeFrom(c).Files(); len(files) > 0 {
		sticker = files[0]
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), actorFrom(c), req, sticker)
	if err != nil {
		respondServiceError(c, err, "Profile update failed")
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	var staged *storage.StagedFile
	if files := middleware.ScopeFrom(c).Files(); len(files) > 0 {
		staged = files[0]
	}

	profile, err := h.service.UpdateAvatar(c.Request.Context(), actorFrom(c), staged)
	if err != nil {
		respondServiceError(c, err, "Avatar update failed")
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// StreamAvatar serves the avatar file directly; binary endpoints use plain
// status codes instead of the JSON envelope.
func (h *Handler) StreamAvatar(c *gin.Context) {
	h.stream(c, h.service.AvatarPath)
}

func (h *Handler) StreamSticker(c *gin.Context) {
	h.stream(c, h.service.StickerPath)
}

func (h *Handler) stream(c *gin.Context, resolve func(ctx context.Context, idx string) (string, error)) {
	path, err := resolve(c.Request.Context(), c.Param("idx"))
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
