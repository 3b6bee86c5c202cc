package models

import "time"

// LinkClicksDaily 链接点击按天汇总（每个 (link, date) 一行，由原子 upsert 维护）
type LinkClicksDaily struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                           // 主键
	LinkID       uint      `gorm:"not null;index;uniqueIndex:uq_link_date" json:"link_id"`         // 链接ID
	Date         time.Time `gorm:"type:date;not null;index;uniqueIndex:uq_link_date" json:"date"`  // 日期（UTC 零点）
	Clicks       int64     `gorm:"not null;default:0" json:"clicks"`                               // 当日点击数
	UniqueClicks int64     `gorm:"not null;default:0" json:"unique_clicks"`                        // 当日去重点击数（当前与 Clicks 同步）

	Link *TrackingLink `gorm:"foreignKey:LinkID" json:"link,omitempty"` // 所属链接
}

// TableName 指定表名
func (LinkClicksDaily) TableName() string {
	return "link_clicks_daily"
}
