package public

import (
	"errors"

	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 账号密码登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and password are required")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid username or password")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Login failed", err)
		return
	}

	response.Success(c, gin.H{
		"accessToken": token,
		"tokenType":   "bearer",
		"expiresAt":   expiresAt,
		"user":        user,
	})
}

// GetCurrentUser 当前账号信息，info 按角色返回公司或达人档案。
func (h *Handler) GetCurrentUser(c *gin.Context) {
	identity, ok := getIdentity(c)
	if !ok {
		return
	}

	profile, err := h.AuthService.GetProfile(identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Unauthorized(c, "User not found")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load profile", err)
		return
	}
	response.Success(c, profile)
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 发送密码重置邮件
// 无论邮箱是否存在均返回同样的成功消息，避免账号枚举。
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email is required")
		return
	}

	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		handlershared.RespondFail(c, response.TypeInternal, "Failed to process request", err)
		return
	}
	response.SuccessWithMsg(c, "If the email exists, a password reset link has been sent.", nil)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPassword 通过邮件令牌重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token and passwords are required")
		return
	}

	if err := h.AuthService.ResetPassword(req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			response.Fail(c, response.TypeDomainFailure, "Passwords do not match")
		case errors.Is(err, service.ErrInvalidToken):
			response.Fail(c, response.TypeDomainFailure, "Invalid or expired reset token")
		case errors.Is(err, service.ErrWeakPassword):
			response.Fail(c, response.TypeDomainFailure, err.Error())
		case errors.Is(err, service.ErrNotFound):
			response.Fail(c, response.TypeDomainFailure, "Invalid or expired reset token")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to reset password", err)
		}
		return
	}
	response.SuccessWithMsg(c, "Password has been reset.", nil)
}
