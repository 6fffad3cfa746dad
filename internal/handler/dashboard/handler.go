package dashboard

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	practitionerService "github.com/apconnect/directory-api/internal/service/practitioner"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

const photoField = "photo"

// Handler serves the signed-in practitioner's own profile.
type Handler struct {
	service practitionerService.PractitionerServicer
}

func NewHandler(service practitionerService.PractitionerServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects r to be behind authentication.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.POST("/profile", h.CreateProfile)
		dashboard.PUT("/profile", h.UpdateProfile)
		dashboard.PUT("/profile/photo", h.UploadPhoto)
		dashboard.PUT("/availability", h.UpdateAvailability)
		dashboard.POST("/locations", h.AddLocation)
		dashboard.DELETE("/locations/:id", h.DeleteLocation)
		dashboard.POST("/training", h.AddTraining)
		dashboard.POST("/submit", h.Submit)
	}
}

func (h *Handler) GetDashboard(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	dash, err := h.service.GetDashboard(c.Request.Context(), user.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(dash))
}

func (h *Handler) CreateProfile(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.CreateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.CreateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.AvailabilityRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.service.UpdateAvailability(c.Request.Context(), user.ID, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("availability updated"))
}

func (h *Handler) AddLocation(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.AddLocationRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	loc, err := h.service.AddLocation(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(loc))
}

func (h *Handler) DeleteLocation(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.BadRequest("invalid location ID", err))
		return
	}

	if err := h.service.DeleteLocation(c.Request.Context(), user.ID, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("location deleted"))
}

func (h *Handler) AddTraining(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.AddTrainingRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	record, err := h.service.AddTrainingRecord(c.Request.Context(), user.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

func (h *Handler) Submit(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	if err := h.service.SubmitForVerification(c.Request.Context(), user.ID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("profile submitted for verification"))
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile(photoField)
	if err != nil {
		handler.RespondError(c, apperrors.BadRequest("photo file is required", err))
		return
	}
	file, err := header.Open()
	if err != nil {
		handler.RespondError(c, apperrors.BadRequest("unable to read photo", err))
		return
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		handler.RespondError(c, apperrors.BadRequest("unable to read photo", err))
		return
	}

	url, err := h.service.UploadPhoto(c.Request.Context(), user.ID, practitionerService.Photo{
		Body:        file,
		Size:        header.Size,
		ContentType: contentType,
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"photo_url": url}))
}

// sniffContentType detects the type from the file content, ignoring the
// client supplied header, and rewinds the file.
func sniffContentType(file multipart.File) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
