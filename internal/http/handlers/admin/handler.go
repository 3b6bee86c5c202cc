package admin

import "github.com/Kerimcan19/InfluencerAgency/internal/provider"

// Handler 管理端接口处理器入口
// 公司角色对其中部分接口（达人与活动管理）同样可用，路由策略控制可见范围。
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
