package admin

import (
	"errors"

	handlershared "github.com/Kerimcan19/InfluencerAgency/internal/http/handlers/shared"
	"github.com/Kerimcan19/InfluencerAgency/internal/http/response"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"

	"github.com/gin-gonic/gin"
)

// AddInfluencerRequest 达人创建请求
type AddInfluencerRequest struct {
	DisplayName  string `json:"display_name" binding:"required"`
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profile_image"`
	Active       *bool  `json:"active"`
}

// AddInfluencer 创建达人档案与登录账号，并发送密码设置邮件。
func (h *Handler) AddInfluencer(c *gin.Context) {
	var req AddInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "display_name, username and email are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := h.InfluencerService.AddInfluencer(service.AddInfluencerInput{
		DisplayName:  req.DisplayName,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Active:       active,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Fail(c, response.TypeConflict, "Username already exists")
		case errors.Is(err, service.ErrEmailExists):
			response.Fail(c, response.TypeConflict, "Email already exists")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to create influencer", err)
		}
		return
	}
	response.Success(c, result)
}

// UpdateInfluencerRequest 达人更新请求，未出现的字段保持原值。
type UpdateInfluencerRequest struct {
	DisplayName    *string       `json:"display_name"`
	Username       *string       `json:"username"`
	Email          *string       `json:"email"`
	Phone          *string       `json:"phone"`
	ProfileImage   *string       `json:"profile_image"`
	FollowerCount  *int64        `json:"follower_count"`
	EngagementRate *models.Money `json:"engagement_rate"`
	InstagramURL   *string       `json:"instagram_url"`
	TiktokURL      *string       `json:"tiktok_url"`
	YoutubeURL     *string       `json:"youtube_url"`
	Active         *bool         `json:"active"`

	ResetPassword bool `json:"reset_password"`
}

// UpdateInfluencer 更新达人资料，可选同时签发密码重置链接。
func (h *Handler) UpdateInfluencer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.InfluencerService.UpdateInfluencer(id, service.UpdateInfluencerInput{
		Update: repository.InfluencerUpdate{
			DisplayName:    req.DisplayName,
			Username:       req.Username,
			Email:          req.Email,
			Phone:          req.Phone,
			ProfileImage:   req.ProfileImage,
			FollowerCount:  req.FollowerCount,
			EngagementRate: req.EngagementRate,
			InstagramURL:   req.InstagramURL,
			TiktokURL:      req.TiktokURL,
			YoutubeURL:     req.YoutubeURL,
			Active:         req.Active,
		},
		ResetPassword: req.ResetPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInfluencerNotFound):
			response.NotFound(c, "Influencer not found")
		case errors.Is(err, service.ErrUsernameExists):
			response.Fail(c, response.TypeConflict, "Username already exists")
		case errors.Is(err, service.ErrEmailExists):
			response.Fail(c, response.TypeConflict, "Email already exists")
		default:
			handlershared.RespondFail(c, response.TypeInternal, "Failed to update influencer", err)
		}
		return
	}
	response.Success(c, result)
}

// GetInfluencer 达人详情
func (h *Handler) GetInfluencer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	influencer, err := h.InfluencerService.GetInfluencer(id)
	if err != nil {
		if errors.Is(err, service.ErrInfluencerNotFound) {
			response.NotFound(c, "Influencer not found")
			return
		}
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load influencer", err)
		return
	}
	response.Success(c, influencer)
}

// ListInfluencers 达人列表
func (h *Handler) ListInfluencers(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		parseIntQuery(c, "page"), parseIntQuery(c, "pageSize"))

	filter := repository.InfluencerListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    c.Query("name"),
		CampaignID: uint(parseIntQuery(c, "campaignId")),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.Active = &active
	}

	influencers, total, err := h.InfluencerService.ListInfluencers(filter)
	if err != nil {
		handlershared.RespondFail(c, response.TypeInternal, "Failed to load influencers", err)
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, influencers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
