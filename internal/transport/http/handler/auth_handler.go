package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-gorm-shop/internal/core/auth"
	"gin-gorm-shop/internal/service"
	"gin-gorm-shop/internal/transport/http/ez"
)

type loginReq struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 0 }

func (h *AuthHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[loginReq, auth.TokenPair]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginReq) (auth.TokenPair, error) {
			return h.svc.SignIn(c.Request.Context(), in.Email, in.Password)
		},
	})

	ez.RegisterAction(e, ez.Action[refreshReq, auth.TokenPair]{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Binder: ez.BindJSON,
		Handler: func(_ *gin.Context, in *refreshReq) (auth.TokenPair, error) {
			return h.svc.Refresh(in.RefreshToken)
		},
	})
}
