package models

import "time"

// Report 单个达人在单个活动下的一次佣金分账结算记录
// 创建后不可变更，属历史记录
type Report struct {
	ID        uint      `gorm:"primarykey" json:"id"`        // 主键
	CreatedAt time.Time `gorm:"index" json:"createdAt"`      // 创建时间

	InfluencerID *uint `gorm:"index" json:"influencer_id,omitempty"` // 达人ID
	CampaignID   uint  `gorm:"index;not null" json:"campaignId"`     // 活动ID
	CompanyID    *uint `gorm:"index" json:"company_id,omitempty"`    // 所属公司（创建时从活动冗余）

	TotalClicks int64 `gorm:"default:0" json:"totalClicks"` // 总点击
	TotalSales  int64 `gorm:"default:0" json:"totalSales"`  // 总销售

	BrandCommissionRate        Money `gorm:"type:decimal(5,2)" json:"brandCommissionRate"`        // 品牌佣金比例
	BrandCommissionAmount      Money `gorm:"type:decimal(10,2)" json:"brandCommissionAmount"`     // 品牌佣金金额
	InfluencerCommissionRate   Money `gorm:"type:decimal(5,2)" json:"influencerCommissionRate"`   // 达人佣金比例
	InfluencerCommissionAmount Money `gorm:"type:decimal(10,2)" json:"influencerCommissionAmount"` // 达人佣金金额
	OtherCostsRate             Money `gorm:"type:decimal(5,2)" json:"otherCostsRate"`             // 其他成本比例

	MimedaCommissionRate   Money `gorm:"type:decimal(5,2)" json:"mimedaCommissionRate"`    // 平台佣金比例
	MimedaCommissionAmount Money `gorm:"type:decimal(10,2)" json:"mimedaCommissionAmount"` // 平台佣金金额
	AgencyCommissionRate   Money `gorm:"type:decimal(5,2)" json:"agencyCommissionRate"`    // 机构佣金比例
	AgencyCommissionAmount Money `gorm:"type:decimal(10,2)" json:"agencyCommissionAmount"` // 机构佣金金额

	MLinkID           *string    `gorm:"type:varchar(64);uniqueIndex" json:"mlink_id,omitempty"` // 外部伙伴标识
	Source            string     `gorm:"type:varchar(16);default:'mlink'" json:"source"`         // 数据来源
	SourcePayloadJSON JSON       `gorm:"type:json" json:"-"`                                     // 外部原始载荷快照
	LastSyncedAt      *time.Time `json:"last_synced_at,omitempty"`                               // 最近同步时间

	Influencer *Influencer `gorm:"foreignKey:InfluencerID" json:"influencer,omitempty"` // 达人
	Campaign   *Campaign   `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`     // 活动
	Company    *Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`       // 公司
}

// InfluencerName 由关联达人派生的展示名（不落库，避免漂移）
func (r *Report) InfluencerName() string {
	if r.Influencer == nil {
		return ""
	}
	return r.Influencer.DisplayName
}

// CampaignName 由关联活动派生的名称（不落库）
func (r *Report) CampaignName() string {
	if r.Campaign == nil {
		return ""
	}
	return r.Campaign.Name
}

// TableName 指定表名
func (Report) TableName() string {
	return "reports"
}
