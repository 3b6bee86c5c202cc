package constants

// 用户角色常量
const (
	RoleAdmin      = "admin"
	RoleCompany    = "company"
	RoleInfluencer = "influencer"
)

// 追踪链接状态常量
const (
	LinkStatusActive = "active"
)

// 数据来源常量
const (
	SourceLocal = "local"
	SourceMLink = "mlink"
)

// 活动日志类型常量
const (
	ActivityLinkGenerated   = "Link generated"
	ActivityReportCreated   = "Report created."
	ActivityCampaignStarted = "Campaign started"
)

// 令牌用途常量
const (
	TokenPurposePasswordReset = "password_reset"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskPasswordResetEmail = "email:password_reset"
)

// 日期过滤格式（外部接口统一使用 DD.MM.YYYY）
const (
	FilterDateLayout = "02.01.2006"
)
