package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON 通用 JSON 字段类型
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// Campaign 品牌营销活动
type Campaign struct {
	ID        uint      `gorm:"primarykey" json:"id"`               // 主键
	CreatedAt time.Time `json:"created_at"`                         // 创建时间
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`     // 创建账号（兼容保留）
	CompanyID *uint     `gorm:"index" json:"company_id,omitempty"`  // 所属公司

	Name  string `gorm:"not null" json:"name"`   // 活动名称
	Brief string `json:"brief,omitempty"`        // 活动简介

	BrandCommissionRate      Money      `gorm:"type:decimal(5,2)" json:"brandCommissionRate"`      // 品牌佣金比例（%）
	InfluencerCommissionRate Money      `gorm:"type:decimal(5,2)" json:"influencerCommissionRate"` // 达人佣金比例（%）
	OtherCostsRate           Money      `gorm:"type:decimal(5,2)" json:"otherCostsRate"`           // 其他成本比例（%）
	StartDate                time.Time  `json:"startDate"`                                         // 开始日期
	EndDate                  *time.Time `json:"endDate,omitempty"`                                 // 结束日期
	BrandingImage            string     `json:"brandingImage,omitempty"`                           // 品牌形象图

	MLinkID           *string    `gorm:"type:varchar(64);uniqueIndex" json:"mlink_id,omitempty"` // 外部伙伴标识
	Source            string     `gorm:"type:varchar(16);default:'mlink'" json:"source"`         // 数据来源
	SourcePayloadJSON JSON       `gorm:"type:json" json:"-"`                                     // 外部原始载荷快照
	LastSyncedAt      *time.Time `json:"last_synced_at,omitempty"`                               // 最近同步时间

	Company     *Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`                                    // 所属公司
	Products    []Product      `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"products,omitempty"`      // 关联商品
	Links       []TrackingLink `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"links,omitempty"`         // 追踪链接
	Reports     []Report       `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"reports,omitempty"`       // 佣金报表
	Influencers []Influencer   `gorm:"many2many:campaign_influencers" json:"influencers,omitempty"`                      // 参与达人
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}
