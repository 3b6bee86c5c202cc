package service

import (
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"gorm.io/gorm"
)

// CampaignService 推广活动业务服务
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	activityRepo repository.ActivityLogRepository
}

// NewCampaignService 创建推广活动服务
func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	activityRepo repository.ActivityLogRepository,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
	}
}

// CreateCampaignInput 活动创建输入
type CreateCampaignInput struct {
	Name                     string
	Brief                    string
	BrandingImage            string
	BrandCommissionRate      models.Money
	InfluencerCommissionRate models.Money
	OtherCostsRate           models.Money
	StartDate                *time.Time
	EndDate                  *time.Time
	CompanyID                uint
}

// CreateCampaign 创建本地推广活动并记录公司动态
func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*models.Campaign, error) {
	if input.CompanyID == 0 {
		return nil, ErrCompanyRequired
	}
	name := strings.TrimSpace(input.Name)

	startDate := time.Now()
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	companyID := input.CompanyID
	campaign := &models.Campaign{
		Name:                     name,
		Brief:                    input.Brief,
		BrandingImage:            strings.TrimSpace(input.BrandingImage),
		BrandCommissionRate:      input.BrandCommissionRate,
		InfluencerCommissionRate: input.InfluencerCommissionRate,
		OtherCostsRate:           input.OtherCostsRate,
		StartDate:                startDate,
		EndDate:                  input.EndDate,
		CompanyID:                &companyID,
		Source:                   constants.SourceLocal,
	}

	err := s.campaignRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.campaignRepo.WithTx(tx).Create(campaign); err != nil {
			return err
		}
		return s.activityRepo.WithTx(tx).Create(&models.ActivityLog{
			CompanyID: companyID,
			Type:      constants.ActivityCampaignStarted,
			Label:     name,
		})
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

// CampaignQueryInput 活动查询输入
type CampaignQueryInput struct {
	Keyword   string
	StartDate string // DD.MM.YYYY，按活动结束日期过滤
	EndDate   string // DD.MM.YYYY
	Page      int
	PageSize  int

	ActorRole      string
	ActorCompanyID uint
	CompanyID      uint // 仅管理员可指定
}

// ListCampaigns 按角色作用域查询活动列表
func (s *CampaignService) ListCampaigns(input CampaignQueryInput) ([]models.Campaign, int64, error) {
	filter := repository.CampaignListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Keyword:  input.Keyword,
	}
	switch input.ActorRole {
	case constants.RoleAdmin:
		filter.CompanyID = input.CompanyID
	case constants.RoleCompany:
		filter.CompanyID = input.ActorCompanyID
	case constants.RoleInfluencer:
		// 达人可浏览全部进行中的活动
		now := time.Now()
		filter.ActiveAt = &now
	default:
		return nil, 0, ErrForbidden
	}

	if raw := strings.TrimSpace(input.StartDate); raw != "" {
		start, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			return nil, 0, ErrInvalidStartDate
		}
		filter.EndDateFrom = &start
	}
	if raw := strings.TrimSpace(input.EndDate); raw != "" {
		end, err := time.Parse(constants.FilterDateLayout, raw)
		if err != nil {
			return nil, 0, ErrInvalidEndDate
		}
		filter.EndDateTo = &end
	}

	return s.campaignRepo.List(filter)
}

// GetCampaign 查询单个活动
func (s *CampaignService) GetCampaign(id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}
