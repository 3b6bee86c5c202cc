package models

import "time"

// ActivityLog 公司维度的操作活动日志
type ActivityLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`            // 主键
	CompanyID uint      `gorm:"not null;index" json:"company_id"` // 所属公司
	Type      string    `gorm:"not null" json:"type"`            // 活动类型
	Label     string    `gorm:"not null" json:"label"`           // 活动标签（活动名、达人名等）
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"` // 发生时间

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"` // 公司
}

// TableName 指定表名
func (ActivityLog) TableName() string {
	return "activity_log"
}
