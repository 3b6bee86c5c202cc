package repository

import (
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
)

// ActivityLogRepository 操作动态数据访问接口
type ActivityLogRepository interface {
	WithTx(tx *gorm.DB) ActivityLogRepository

	Create(log *models.ActivityLog) error
	ListRecent(filter ActivityLogListFilter) ([]models.ActivityLog, error)
}

// GormActivityLogRepository GORM 操作动态仓储
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository 创建操作动态仓储
func NewActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormActivityLogRepository) WithTx(tx *gorm.DB) ActivityLogRepository {
	if tx == nil {
		return r
	}
	return &GormActivityLogRepository{db: tx}
}

// Create 写入操作动态
func (r *GormActivityLogRepository) Create(log *models.ActivityLog) error {
	return r.db.Create(log).Error
}

// ListRecent 查询公司最近的操作动态
func (r *GormActivityLogRepository) ListRecent(filter ActivityLogListFilter) ([]models.ActivityLog, error) {
	query := r.db.Model(&models.ActivityLog{})
	if filter.CompanyID != 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if logType := strings.TrimSpace(filter.Type); logType != "" {
		query = query.Where("type = ?", logType)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	var rows []models.ActivityLog
	if err := query.Order("timestamp desc, id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
