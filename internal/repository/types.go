package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyListFilter 查询公司列表的过滤条件
type CompanyListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Active   *bool
}

// InfluencerListFilter 查询达人列表的过滤条件
type InfluencerListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	Active     *bool
	CampaignID uint
}

// CampaignListFilter 查询推广活动列表的过滤条件
type CampaignListFilter struct {
	Page        int
	PageSize    int
	CompanyID   uint
	Keyword     string
	Source      string
	ActiveAt    *time.Time
	EndDateFrom *time.Time
	EndDateTo   *time.Time
}

// ReportListFilter 查询佣金结算报表的过滤条件
type ReportListFilter struct {
	Page          int
	PageSize      int
	CompanyID     uint
	InfluencerID  uint
	CampaignID    uint
	MLinkID       string
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

// TrackingLinkListFilter 查询跟踪链接列表的过滤条件
type TrackingLinkListFilter struct {
	Page         int
	PageSize     int
	CompanyID    uint
	InfluencerID uint
	CampaignID   uint
	Status       string
}

// ActivityLogListFilter 查询操作动态的过滤条件
type ActivityLogListFilter struct {
	CompanyID uint
	Type      string
	Limit     int
}

// ReportSummaryAggregate 报表汇总聚合结果
type ReportSummaryAggregate struct {
	ActiveInfluencers         int64
	TotalInfluencerCommission decimal.Decimal
}

// DashboardAggregate 工作台汇总聚合结果
type DashboardAggregate struct {
	CampaignCount   int64
	InfluencerCount int64
	LinkCount       int64
	TotalClicks     int64
	TotalSales      int64
	TotalCommission decimal.Decimal
}
