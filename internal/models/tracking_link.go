package models

import "time"

// TrackingLink 达人在单个活动下的归因追踪链接
// (influencer_id, campaign_id, company_id) 组合唯一，由数据库约束兜底
type TrackingLink struct {
	ID        uint      `gorm:"primarykey" json:"id"` // 主键
	CreatedAt time.Time `json:"created_at"`           // 创建时间

	InfluencerID   uint   `gorm:"not null;index;uniqueIndex:uq_link_influencer_campaign_company" json:"influencer_id"` // 达人ID
	CampaignID     uint   `gorm:"not null;index;uniqueIndex:uq_link_influencer_campaign_company" json:"campaign_id"`   // 活动ID
	CompanyID      uint   `gorm:"not null;index;uniqueIndex:uq_link_influencer_campaign_company" json:"company_id"`    // 公司ID
	InfluencerName string `gorm:"type:varchar(255)" json:"influencer_name"`                                            // 达人展示名快照

	Token        string  `gorm:"type:varchar(512);not null;uniqueIndex" json:"token"`    // 签名令牌（不透明、无过期）
	GeneratedURL string  `gorm:"type:varchar(512);not null" json:"generated_url"`        // 对外短链
	LandingURL   string  `gorm:"type:varchar(512)" json:"landing_url"`                   // 跳转目标
	Status       string  `gorm:"type:varchar(16);default:'active'" json:"status"`        // 链接状态
	Source       string  `gorm:"type:varchar(16);default:'local'" json:"source"`         // 数据来源
	MLinkID      *string `gorm:"type:varchar(64);uniqueIndex" json:"mlink_id,omitempty"` // 外部伙伴标识
	MLinkURL     string  `gorm:"type:varchar(512)" json:"mlink_url,omitempty"`           // 外部伙伴链接

	ClickCount int64 `gorm:"not null;default:0" json:"click_count"` // 聚合点击计数

	Influencer *Influencer `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"` // 达人
	Campaign   *Campaign   `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`     // 活动
	Company    *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`       // 公司
}

// TableName 指定表名
func (TrackingLink) TableName() string {
	return "tracking_links"
}
