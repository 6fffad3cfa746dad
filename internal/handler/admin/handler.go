package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	adminService "github.com/apconnect/directory-api/internal/service/admin"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

type Handler struct {
	service adminService.AdminServicer
}

func NewHandler(service adminService.AdminServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to be restricted to admins.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	admin := r.Group("/admin")
	{
		admin.GET("", h.Stats)
		admin.GET("/practitioners", h.ListPractitioners)
		admin.GET("/pending", h.ListPending)
		admin.POST("/pending/:id/verify", h.VerifyPractitioner)
		admin.POST("/pending/:id/reject", h.SuspendPractitioner)
		admin.GET("/training", h.ListPendingTraining)
		admin.POST("/training/:id/verify", h.VerifyTraining)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) ListPractitioners(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) VerifyPractitioner(c *gin.Context) {
	admin, ok := handler.MustUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.VerifyPractitioner(c.Request.Context(), id, admin.ID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("practitioner verified"))
}

func (h *Handler) SuspendPractitioner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.SuspendRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.SuspendPractitioner(c.Request.Context(), id, req.Reason); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("practitioner suspended"))
}

func (h *Handler) ListPendingTraining(c *gin.Context) {
	list, err := h.service.ListPendingTraining(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) VerifyTraining(c *gin.Context) {
	admin, ok := handler.MustUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.VerifyTrainingRecord(c.Request.Context(), id, admin.ID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("training record verified"))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid ID", err))
		return uuid.Nil, false
	}
	return id, true
}
