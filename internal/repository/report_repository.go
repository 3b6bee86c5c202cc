package repository

import (
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository 结算报表数据访问接口
type ReportRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ReportRepository

	Create(report *models.Report) error
	List(filter ReportListFilter) ([]models.Report, int64, error)
	Summary(filter ReportListFilter) (ReportSummaryAggregate, error)
}

// GormReportRepository GORM 结算报表仓储
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建结算报表仓储
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReportRepository) WithTx(tx *gorm.DB) ReportRepository {
	if tx == nil {
		return r
	}
	return &GormReportRepository{db: tx}
}

// Transaction 执行事务
func (r *GormReportRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建报表，报表一经写入不再更新。
func (r *GormReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *GormReportRepository) applyFilter(filter ReportListFilter) *gorm.DB {
	query := r.db.Model(&models.Report{})
	if filter.CompanyID != 0 {
		query = query.Where("reports.company_id = ?", filter.CompanyID)
	}
	if filter.InfluencerID != 0 {
		query = query.Where("reports.influencer_id = ?", filter.InfluencerID)
	}
	if filter.CampaignID != 0 {
		query = query.Where("reports.campaign_id = ?", filter.CampaignID)
	}
	if mlinkID := strings.TrimSpace(filter.MLinkID); mlinkID != "" {
		query = query.
			Joins("JOIN influencers ON influencers.id = reports.influencer_id").
			Where("influencers.m_link_id = ?", mlinkID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("reports.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("reports.created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// List 查询报表列表
func (r *GormReportRepository) List(filter ReportListFilter) ([]models.Report, int64, error) {
	query := r.applyFilter(filter).Preload("Influencer").Preload("Campaign")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Report
	if err := query.Order("reports.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Summary 汇总命中报表的达人数与达人佣金总额
func (r *GormReportRepository) Summary(filter ReportListFilter) (ReportSummaryAggregate, error) {
	var row struct {
		ActiveInfluencers int64           `gorm:"column:active_influencers"`
		TotalCommission   decimal.Decimal `gorm:"column:total_commission"`
	}
	err := r.applyFilter(filter).
		Select("COUNT(DISTINCT reports.influencer_id) AS active_influencers, COALESCE(SUM(reports.influencer_commission_amount), 0) AS total_commission").
		Scan(&row).Error
	if err != nil {
		return ReportSummaryAggregate{}, err
	}
	return ReportSummaryAggregate{
		ActiveInfluencers:         row.ActiveInfluencers,
		TotalInfluencerCommission: row.TotalCommission.Round(2),
	}, nil
}
