package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkRepository 跟踪链接数据访问接口
type LinkRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) LinkRepository

	GetByToken(token string) (*models.TrackingLink, error)
	GetByOwner(influencerID, campaignID, companyID uint) (*models.TrackingLink, error)
	Create(link *models.TrackingLink) error
	List(filter TrackingLinkListFilter) ([]models.TrackingLink, int64, error)

	RecordClick(linkID uint, day time.Time) error
	GetDailyClicks(linkID uint, day time.Time) (*models.LinkClicksDaily, error)
}

// GormLinkRepository GORM 跟踪链接仓储
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository 创建跟踪链接仓储
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLinkRepository) WithTx(tx *gorm.DB) LinkRepository {
	if tx == nil {
		return r
	}
	return &GormLinkRepository{db: tx}
}

// Transaction 执行事务
func (r *GormLinkRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByToken 按令牌获取链接
func (r *GormLinkRepository) GetByToken(token string) (*models.TrackingLink, error) {
	normalized := strings.TrimSpace(token)
	if normalized == "" {
		return nil, nil
	}
	var link models.TrackingLink
	if err := r.db.Where("token = ?", normalized).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetByOwner 按 (达人, 活动, 公司) 组合获取链接
func (r *GormLinkRepository) GetByOwner(influencerID, campaignID, companyID uint) (*models.TrackingLink, error) {
	if influencerID == 0 || campaignID == 0 || companyID == 0 {
		return nil, nil
	}
	var link models.TrackingLink
	err := r.db.Where("influencer_id = ? AND campaign_id = ? AND company_id = ?",
		influencerID, campaignID, companyID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Create 创建链接，唯一约束冲突原样返回由上层判定。
func (r *GormLinkRepository) Create(link *models.TrackingLink) error {
	return r.db.Create(link).Error
}

// List 查询链接列表
func (r *GormLinkRepository) List(filter TrackingLinkListFilter) ([]models.TrackingLink, int64, error) {
	query := r.db.Model(&models.TrackingLink{}).Preload("Influencer").Preload("Campaign")
	if filter.CompanyID != 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.InfluencerID != 0 {
		query = query.Where("influencer_id = ?", filter.InfluencerID)
	}
	if filter.CampaignID != 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.TrackingLink
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// RecordClick 单事务记录一次点击：聚合计数自增 + 当日汇总行原子 upsert。
func (r *GormLinkRepository) RecordClick(linkID uint, day time.Time) error {
	if linkID == 0 {
		return nil
	}
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TrackingLink{}).
			Where("id = ?", linkID).
			Update("click_count", gorm.Expr("click_count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "link_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"clicks":        gorm.Expr("link_clicks_daily.clicks + ?", 1),
				"unique_clicks": gorm.Expr("link_clicks_daily.unique_clicks + ?", 1),
			}),
		}).Create(&models.LinkClicksDaily{
			LinkID:       linkID,
			Date:         date,
			Clicks:       1,
			UniqueClicks: 1,
		}).Error
	})
}

// GetDailyClicks 查询链接某日汇总行
func (r *GormLinkRepository) GetDailyClicks(linkID uint, day time.Time) (*models.LinkClicksDaily, error) {
	if linkID == 0 {
		return nil, nil
	}
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var row models.LinkClicksDaily
	if err := r.db.Where("link_id = ? AND date = ?", linkID, date).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
