package models

import "time"

// Product 活动关联商品（由外部数据源合并而来）
type Product struct {
	ID         uint      `gorm:"primarykey" json:"id"`          // 主键
	CreatedAt  time.Time `json:"created_at"`                    // 创建时间
	Name       string    `gorm:"not null" json:"name"`          // 商品名称
	Image      string    `json:"image,omitempty"`               // 商品图片
	CampaignID uint      `gorm:"index;not null" json:"campaign_id"` // 所属活动

	MLinkID           *string    `gorm:"type:varchar(64);uniqueIndex" json:"mlink_id,omitempty"` // 外部伙伴标识
	Source            string     `gorm:"type:varchar(16);default:'mlink'" json:"source"`         // 数据来源
	SourcePayloadJSON JSON       `gorm:"type:json" json:"-"`                                     // 外部原始载荷快照
	LastSyncedAt      *time.Time `json:"last_synced_at,omitempty"`                               // 最近同步时间

	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"` // 所属活动
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
