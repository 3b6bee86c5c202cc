package repository

import (
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository 工作台聚合数据访问接口
type DashboardRepository interface {
	Aggregate(companyID uint) (DashboardAggregate, error)
}

// GormDashboardRepository GORM 工作台仓储
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建工作台仓储
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// Aggregate 汇总公司维度的核心指标，companyID 为 0 时统计全平台。
func (r *GormDashboardRepository) Aggregate(companyID uint) (DashboardAggregate, error) {
	result := DashboardAggregate{TotalCommission: decimal.Zero}

	campaignQuery := r.db.Model(&models.Campaign{})
	if companyID != 0 {
		campaignQuery = campaignQuery.Where("company_id = ?", companyID)
	}
	if err := campaignQuery.Count(&result.CampaignCount).Error; err != nil {
		return result, err
	}

	linkQuery := r.db.Model(&models.TrackingLink{})
	if companyID != 0 {
		linkQuery = linkQuery.Where("company_id = ?", companyID)
	}
	if err := linkQuery.Count(&result.LinkCount).Error; err != nil {
		return result, err
	}

	influencerQuery := r.db.Model(&models.TrackingLink{}).Distinct("influencer_id")
	if companyID != 0 {
		influencerQuery = influencerQuery.Where("company_id = ?", companyID)
	}
	if err := influencerQuery.Count(&result.InfluencerCount).Error; err != nil {
		return result, err
	}

	var clickRow struct {
		Total int64 `gorm:"column:total"`
	}
	clickQuery := r.db.Model(&models.TrackingLink{}).Select("COALESCE(SUM(click_count), 0) AS total")
	if companyID != 0 {
		clickQuery = clickQuery.Where("company_id = ?", companyID)
	}
	if err := clickQuery.Scan(&clickRow).Error; err != nil {
		return result, err
	}
	result.TotalClicks = clickRow.Total

	var reportRow struct {
		Sales      int64           `gorm:"column:sales"`
		Commission decimal.Decimal `gorm:"column:commission"`
	}
	reportQuery := r.db.Model(&models.Report{}).
		Select("COALESCE(SUM(total_sales), 0) AS sales, COALESCE(SUM(influencer_commission_amount), 0) AS commission")
	if companyID != 0 {
		reportQuery = reportQuery.Where("company_id = ?", companyID)
	}
	if err := reportQuery.Scan(&reportRow).Error; err != nil {
		return result, err
	}
	result.TotalSales = reportRow.Sales
	result.TotalCommission = reportRow.Commission.Round(2)

	return result, nil
}
