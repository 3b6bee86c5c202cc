package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"gorm.io/gorm"
)

// ReportService 佣金结算报表业务服务
type ReportService struct {
	reportRepo     repository.ReportRepository
	campaignRepo   repository.CampaignRepository
	influencerRepo repository.InfluencerRepository
	activityRepo   repository.ActivityLogRepository
}

// NewReportService 创建结算报表服务
func NewReportService(
	reportRepo repository.ReportRepository,
	campaignRepo repository.CampaignRepository,
	influencerRepo repository.InfluencerRepository,
	activityRepo repository.ActivityLogRepository,
) *ReportService {
	return &ReportService{
		reportRepo:     reportRepo,
		campaignRepo:   campaignRepo,
		influencerRepo: influencerRepo,
		activityRepo:   activityRepo,
	}
}

// CreateReportInput 报表创建输入
type CreateReportInput struct {
	InfluencerID uint
	CampaignID   uint

	TotalClicks int64
	TotalSales  int64

	BrandCommissionRate        models.Money
	BrandCommissionAmount      models.Money
	InfluencerCommissionRate   models.Money
	InfluencerCommissionAmount models.Money
	OtherCostsRate             models.Money
	MimedaCommissionRate       models.Money
	MimedaCommissionAmount     models.Money
	AgencyCommissionRate       models.Money
	AgencyCommissionAmount     models.Money

	ActorRole   string
	ActorUserID uint
}

// CreateReport 创建一条结算记录。达人只能为自己报账，管理员必须显式指定达人。
func (s *ReportService) CreateReport(input CreateReportInput) (*models.Report, error) {
	if input.ActorRole != constants.RoleAdmin && input.ActorRole != constants.RoleInfluencer {
		return nil, ErrForbidden
	}

	influencerID := input.InfluencerID
	if input.ActorRole == constants.RoleInfluencer {
		influencer, err := s.influencerRepo.GetByUserID(input.ActorUserID)
		if err != nil {
			return nil, err
		}
		if influencer == nil {
			return nil, ErrInfluencerNotFound
		}
		influencerID = influencer.ID
	}
	if influencerID == 0 {
		return nil, ErrInfluencerRequired
	}

	campaign, err := s.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	report := &models.Report{
		InfluencerID: &influencerID,
		CampaignID:   campaign.ID,
		CompanyID:    campaign.CompanyID,
		TotalClicks:  input.TotalClicks,
		TotalSales:   input.TotalSales,

		BrandCommissionRate:        input.BrandCommissionRate,
		BrandCommissionAmount:      input.BrandCommissionAmount,
		InfluencerCommissionRate:   input.InfluencerCommissionRate,
		InfluencerCommissionAmount: input.InfluencerCommissionAmount,
		OtherCostsRate:             input.OtherCostsRate,
		MimedaCommissionRate:       input.MimedaCommissionRate,
		MimedaCommissionAmount:     input.MimedaCommissionAmount,
		AgencyCommissionRate:       input.AgencyCommissionRate,
		AgencyCommissionAmount:     input.AgencyCommissionAmount,

		Source: constants.SourceLocal,
	}

	companyID := uint(0)
	if campaign.CompanyID != nil {
		companyID = *campaign.CompanyID
	}
	err = s.reportRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepo.WithTx(tx).Create(report); err != nil {
			return err
		}
		return s.activityRepo.WithTx(tx).Create(&models.ActivityLog{
			CompanyID: companyID,
			Type:      constants.ActivityReportCreated,
			Label:     campaign.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ReportQueryInput 报表查询输入
type ReportQueryInput struct {
	InfluencerID string // 数字视为本地达人主键，否则按外部达人编号匹配
	StartDate    string // DD.MM.YYYY
	EndDate      string // DD.MM.YYYY
	CompanyID    uint   // 仅管理员可指定

	ActorRole      string
	ActorUserID    uint
	ActorCompanyID uint
}

// ReportList 报表查询结果，含按命中集计算的汇总字段。
type ReportList struct {
	Reports                   []models.Report `json:"data"`
	ActiveInfluencers         int64           `json:"activeInfluencers"`
	TotalInfluencerCommission models.Money    `json:"totalInfluencerCommission"`
}

// GetReports 按角色作用域查询报表
func (s *ReportService) GetReports(input ReportQueryInput) (*ReportList, error) {
	if input.ActorRole == constants.RoleInfluencer {
		influencer, err := s.influencerRepo.GetByUserID(input.ActorUserID)
		if err != nil {
			return nil, err
		}
		if influencer == nil {
			return nil, ErrInfluencerNotFound
		}
		filter := repository.ReportListFilter{InfluencerID: influencer.ID}
		return s.collect(filter)
	}

	if input.ActorRole != constants.RoleAdmin && input.ActorRole != constants.RoleCompany {
		return nil, ErrForbidden
	}

	filter := repository.ReportListFilter{}
	if input.ActorRole == constants.RoleAdmin {
		filter.CompanyID = input.CompanyID
	} else {
		filter.CompanyID = input.ActorCompanyID
	}

	if raw := strings.TrimSpace(input.InfluencerID); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.InfluencerID = uint(id)
		} else {
			filter.MLinkID = raw
		}
	}

	if raw := strings.TrimSpace(input.StartDate); raw != "" {
		start, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			return nil, ErrInvalidStartDate
		}
		filter.CreatedFrom = &start
	}
	if raw := strings.TrimSpace(input.EndDate); raw != "" {
		end, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			return nil, ErrInvalidEndDate
		}
		// EndDate 为闭区间语义，换算为次日零点的开区间上界。
		nextDay := end.AddDate(0, 0, 1)
		filter.CreatedBefore = &nextDay
	}

	return s.collect(filter)
}

func (s *ReportService) collect(filter repository.ReportListFilter) (*ReportList, error) {
	reports, _, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.reportRepo.Summary(filter)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		summary.ActiveInfluencers = 0
	}
	return &ReportList{
		Reports:                   reports,
		ActiveInfluencers:         summary.ActiveInfluencers,
		TotalInfluencerCommission: models.NewMoneyFromDecimal(summary.TotalInfluencerCommission),
	}, nil
}
