package reference

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apconnect/directory-api/internal/handler"
	referenceService "github.com/apconnect/directory-api/internal/service/reference"
)

type Handler struct {
	service referenceService.ReferenceServicer
}

func NewHandler(service referenceService.ReferenceServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	ref := r.Group("/reference")
	{
		ref.GET("/conditions", h.ListConditions)
		ref.GET("/states", h.ListStates)
	}
}

func (h *Handler) ListConditions(c *gin.Context) {
	conditions, err := h.service.ListConditions(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(conditions))
}

func (h *Handler) ListStates(c *gin.Context) {
	states, err := h.service.ListStates(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(states))
}
