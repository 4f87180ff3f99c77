// Package http 提供认证与用户资料的 HTTP 接口
package http

import (
	"errors"
	"net/http"

	"github.com/agrigrow/storefront/internal/auth/application"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 认证 HTTP 处理器
type AuthHandler struct {
	app *application.AuthApplicationService
}

// NewAuthHandler 创建认证 HTTP 处理器实例
func NewAuthHandler(app *application.AuthApplicationService) *AuthHandler {
	return &AuthHandler{app: app}
}

// RegisterRoutes 注册路由；profile 路由需要认证
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
	}

	profile := router.Group("/api/v1/profile", RequireAuth(h.app))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 注册新用户
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.app.Register(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrEmailTaken) {
		response.ErrorWithStatus(c, http.StatusConflict, "email already registered")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"user_id": userID})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录并返回会话令牌
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.app.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"token":      session.Token,
		"user_id":    session.UserID,
		"email":      session.Email,
		"expires_at": session.ExpiresAt,
	})
}

// Logout 登出；同时清空服务端购物车
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.app.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

type profileView struct {
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Village   string  `json:"village"`
	State     string  `json:"state"`
	TotalLand float64 `json:"total_land"`
}

// GetProfile 获取当前用户资料
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.app.GetProfile(c.Request.Context(), UserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, profileView{
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Village:   user.Village,
		State:     user.State,
		TotalLand: user.TotalLand,
	})
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	FullName  string  `json:"full_name"`
	Phone     string  `json:"phone"`
	Village   string  `json:"village"`
	State     string  `json:"state"`
	TotalLand float64 `json:"total_land"`
}

// UpdateProfile 更新当前用户资料
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.app.GetProfile(c.Request.Context(), UserID(c))
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	user.FullName = req.FullName
	user.Phone = req.Phone
	user.Village = req.Village
	user.State = req.State
	user.TotalLand = req.TotalLand

	if err := h.app.UpdateProfile(c.Request.Context(), user); err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"updated": true})
}
