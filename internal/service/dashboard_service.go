package service

import (
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
)

// DashboardService 工作台业务服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	activityRepo  repository.ActivityLogRepository
}

// NewDashboardService 创建工作台服务
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	activityRepo repository.ActivityLogRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		activityRepo:  activityRepo,
	}
}

// DashboardOverview 工作台汇总数据
type DashboardOverview struct {
	CampaignCount   int64                `json:"campaignCount"`
	InfluencerCount int64                `json:"influencerCount"`
	LinkCount       int64                `json:"linkCount"`
	TotalClicks     int64                `json:"totalClicks"`
	TotalSales      int64                `json:"totalSales"`
	TotalCommission models.Money         `json:"totalCommission"`
	RecentActivity  []models.ActivityLog `json:"recentActivity"`
}

// Overview 查询公司工作台汇总，管理员传 0 统计全平台。
func (s *DashboardService) Overview(actorRole string, actorCompanyID, companyID uint) (*DashboardOverview, error) {
	scope := companyID
	switch actorRole {
	case constants.RoleAdmin:
		// 管理员可按公司过滤，也可查看全平台
	case constants.RoleCompany:
		scope = actorCompanyID
	default:
		return nil, ErrForbidden
	}

	aggregate, err := s.dashboardRepo.Aggregate(scope)
	if err != nil {
		return nil, err
	}
	activities, err := s.activityRepo.ListRecent(repository.ActivityLogListFilter{
		CompanyID: scope,
		Limit:     20,
	})
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		CampaignCount:   aggregate.CampaignCount,
		InfluencerCount: aggregate.InfluencerCount,
		LinkCount:       aggregate.LinkCount,
		TotalClicks:     aggregate.TotalClicks,
		TotalSales:      aggregate.TotalSales,
		TotalCommission: models.NewMoneyFromDecimal(aggregate.TotalCommission),
		RecentActivity:  activities,
	}, nil
}
