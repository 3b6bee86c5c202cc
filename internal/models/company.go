package models

import "time"

// Company 品牌方公司
type Company struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"` // 公司名称
	CreatedAt time.Time `json:"created_at"`                                         // 创建时间

	Adres         string `gorm:"type:text" json:"adres,omitempty"`                 // 地址
	Telefon       string `gorm:"type:varchar(20)" json:"telefon,omitempty"`        // 电话
	GSM           string `gorm:"type:varchar(20)" json:"gsm,omitempty"`            // 手机
	Faks          string `gorm:"type:varchar(20)" json:"faks,omitempty"`           // 传真
	VergiDairesi  string `gorm:"type:varchar(100)" json:"vergi_dairesi,omitempty"` // 税务局
	VergiNumarasi string `gorm:"type:varchar(20)" json:"vergi_numarasi,omitempty"` // 税号
	Email         string `gorm:"type:varchar(255)" json:"email,omitempty"`         // 邮箱
	Active        bool   `gorm:"default:true" json:"aktiflik_durumu"`              // 启用状态

	YetkiliAdi    string `gorm:"type:varchar(100)" json:"yetkili_adi,omitempty"`    // 联系人名
	YetkiliSoyadi string `gorm:"type:varchar(100)" json:"yetkili_soyadi,omitempty"` // 联系人姓
	YetkiliGSM    string `gorm:"type:varchar(20)" json:"yetkili_gsm,omitempty"`     // 联系人手机

	Users     []User     `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"users,omitempty"`     // 所属用户
	Campaigns []Campaign `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"campaigns,omitempty"` // 所属营销活动
}

// TableName 指定表名
func (Company) TableName() string {
	return "companies"
}
