package public

import "github.com/Kerimcan19/InfluencerAgency/internal/provider"

// Handler 公开与登录态接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
