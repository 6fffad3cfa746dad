package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	searchService "github.com/apconnect/directory-api/internal/service/search"
)

type Handler struct {
	service searchService.SearchServicer
}

func NewHandler(service searchService.SearchServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/search", h.Search)
	r.GET("/practitioner/:slug", h.GetBySlug)
}

func (h *Handler) Search(c *gin.Context) {
	var filters model.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.BindError(c, err)
		return
	}

	results, err := h.service.SearchPractitioners(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) GetBySlug(c *gin.Context) {
	details, err := h.service.GetPractitionerBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(details))
}
