package service

import "errors"

// 服务层业务错误，由 handler 层映射为统一响应。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrForbidden          = errors.New("无权访问")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrInvalidToken       = errors.New("无效的 token")

	ErrUsernameExists     = errors.New("用户名已存在")
	ErrEmailExists        = errors.New("邮箱已存在")
	ErrCompanyNameExists  = errors.New("公司名称已存在")
	ErrCompanyNameEmpty   = errors.New("公司名称不能为空")
	ErrCompanyRequired    = errors.New("缺少公司标识")
	ErrInfluencerRequired = errors.New("缺少达人标识")

	ErrCampaignNotFound   = errors.New("推广活动不存在")
	ErrInfluencerNotFound = errors.New("达人档案不存在")
	ErrLinkNotFound       = errors.New("跟踪链接不存在")
	ErrInvalidDateFilter  = errors.New("日期过滤参数格式错误")
	ErrInvalidStartDate   = errors.New("StartDate 格式错误")
	ErrInvalidEndDate     = errors.New("EndDate 格式错误")
	ErrImportPayload      = errors.New("导入数据格式错误")

	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrInvalidEmail              = errors.New("邮箱地址无效")
	ErrEmailSendFailed           = errors.New("邮件发送失败")

	ErrMLinkDisabled = errors.New("外部联盟平台未启用")
)
