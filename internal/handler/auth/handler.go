package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apconnect/directory-api/internal/handler"
	"github.com/apconnect/directory-api/internal/model"
	authService "github.com/apconnect/directory-api/internal/service/auth"
)

type Handler struct {
	svc authService.AuthServicer
}

func NewHandler(svc authService.AuthServicer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the identity endpoints. requireAuth guards the signed-in routes.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/reset-password/confirm", h.ConfirmReset)
		auth.GET("/verify-email", h.VerifyEmail)

		auth.POST("/logout", requireAuth, h.Logout)
		auth.PUT("/password", requireAuth, h.UpdatePassword)
		auth.GET("/me", requireAuth, h.Me)
	}
}

func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	user, err := h.svc.SignUp(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, &handler.Response{
		Status:  "success",
		Message: "Check your email to confirm your account",
		Data:    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	session, err := h.svc.SignInWithPassword(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(session))
}

func (h *Handler) Logout(c *gin.Context) {
	h.svc.SignOut(c.Request.Context(), handler.AccessToken(c))
	c.JSON(http.StatusOK, handler.NewMessageResponse("signed out"))
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.svc.ResetPasswordForEmail(c.Request.Context(), req.Email); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("if the email exists, a reset link will be sent"))
}

func (h *Handler) ConfirmReset(c *gin.Context) {
	var req model.ConfirmResetRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.svc.ConfirmPasswordReset(c.Request.Context(), &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("password reset successfully"))
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}

	var req model.UpdatePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	if err := h.svc.UpdateUser(c.Request.Context(), user.ID, handler.AccessToken(c), &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("password updated"))
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := handler.MustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	if err := h.svc.VerifyEmail(c.Request.Context(), c.Query("token")); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewMessageResponse("email verified successfully"))
}
