package models

import "time"

// Influencer 达人档案
type Influencer struct {
	ID      uint    `gorm:"primarykey" json:"id"`                                   // 主键
	MLinkID *string `gorm:"type:varchar(64);uniqueIndex" json:"mlink_id,omitempty"` // 外部伙伴标识
	UserID  *uint   `gorm:"index" json:"user_id,omitempty"`                         // 关联登录账号

	DisplayName  string `gorm:"type:varchar(255);not null" json:"display_name"` // 展示名
	Username     string `gorm:"type:varchar(255);not null" json:"username"`     // 用户名
	Email        string `gorm:"type:varchar(255)" json:"email,omitempty"`       // 邮箱
	Phone        string `gorm:"type:varchar(50)" json:"phone,omitempty"`        // 电话
	ProfileImage string `json:"profile_image,omitempty"`                        // 头像

	FollowerCount  int64  `gorm:"default:0" json:"follower_count"`                    // 粉丝数
	EngagementRate *Money `gorm:"type:decimal(5,2)" json:"engagement_rate,omitempty"` // 互动率（%）

	InstagramURL string `json:"instagram_url,omitempty"` // Instagram 主页
	TiktokURL    string `json:"tiktok_url,omitempty"`    // TikTok 主页
	YoutubeURL   string `json:"youtube_url,omitempty"`   // YouTube 主页

	SocialLinksJSON   JSON `gorm:"type:json" json:"social_links,omitempty"` // 其他社交链接
	SourcePayloadJSON JSON `gorm:"type:json" json:"-"`                      // 外部原始载荷快照

	Active    bool      `gorm:"default:true" json:"active"` // 启用状态
	CreatedAt time.Time `json:"created_at"`                 // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                 // 更新时间

	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`                   // 登录账号
	Reports   []Report       `gorm:"foreignKey:InfluencerID" json:"reports,omitempty"`          // 关联报表
	Campaigns []Campaign     `gorm:"many2many:campaign_influencers" json:"campaigns,omitempty"` // 参与的营销活动
	Links     []TrackingLink `gorm:"foreignKey:InfluencerID" json:"links,omitempty"`            // 追踪链接
}

// TableName 指定表名
func (Influencer) TableName() string {
	return "influencers"
}
