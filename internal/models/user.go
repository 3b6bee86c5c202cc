package models

import "time"

// User 登录账号（admin / company / influencer 三种角色）
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                   // 主键
	CompanyID    *uint     `gorm:"index" json:"company_id,omitempty"`                      // 所属公司（仅 company 角色）
	Username     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"username"` // 登录名
	PasswordHash string    `gorm:"not null" json:"-"`                                      // 密码哈希
	Role         string    `gorm:"type:varchar(20);not null;default:'user';index" json:"role"` // 角色
	CreatedAt    time.Time `json:"created_at"`                                             // 创建时间

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"` // 所属公司
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
