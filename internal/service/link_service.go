package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// LinkService 跟踪链接业务服务
type LinkService struct {
	cfg          *config.Config
	linkRepo     repository.LinkRepository
	campaignRepo repository.CampaignRepository
	activityRepo repository.ActivityLogRepository
}

// NewLinkService 创建跟踪链接服务
func NewLinkService(
	cfg *config.Config,
	linkRepo repository.LinkRepository,
	campaignRepo repository.CampaignRepository,
	activityRepo repository.ActivityLogRepository,
) *LinkService {
	return &LinkService{
		cfg:          cfg,
		linkRepo:     linkRepo,
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
	}
}

// GenerateLinkInput 链接签发输入
type GenerateLinkInput struct {
	InfluencerID   string
	InfluencerName string
	CampaignID     uint

	ActorRole      string
	ActorCompanyID uint
}

// GeneratedLink 链接签发结果
type GeneratedLink struct {
	CampaignID uint       `json:"campaignID"`
	Name       string     `json:"name"`
	EndDate    *time.Time `json:"endDate"`
	URL        string     `json:"url"`

	Existing bool `json:"-"`
}

// linkTokenClaims 链接令牌声明，令牌不设过期。
type linkTokenClaims struct {
	Name       string `json:"name"`
	CampaignID uint   `json:"campaignID"`
	jwt.RegisteredClaims
}

// GenerateLink 为达人签发活动跟踪链接，同一 (达人, 活动, 公司) 幂等复用既有链接。
func (s *LinkService) GenerateLink(input GenerateLinkInput) (*GeneratedLink, error) {
	campaign, err := s.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	companyID := uint(0)
	if campaign.CompanyID != nil {
		companyID = *campaign.CompanyID
	}
	if input.ActorRole == constants.RoleCompany && companyID != input.ActorCompanyID {
		return nil, ErrForbidden
	}

	influencerID, err := parseInfluencerID(input.InfluencerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.linkRepo.GetByOwner(influencerID, campaign.ID, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.buildResult(campaign, existing, true), nil
	}

	token, err := s.signLinkToken(input.InfluencerID, input.InfluencerName, campaign.ID)
	if err != nil {
		return nil, err
	}

	link := &models.TrackingLink{
		InfluencerID:   influencerID,
		CampaignID:     campaign.ID,
		CompanyID:      companyID,
		InfluencerName: strings.TrimSpace(input.InfluencerName),
		Token:          token,
		GeneratedURL:   s.buildTrackingURL(token),
		LandingURL:     s.cfg.Tracking.DefaultLandingURL,
		Status:         constants.LinkStatusActive,
		Source:         constants.SourceLocal,
	}

	err = s.linkRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.linkRepo.WithTx(tx).Create(link); err != nil {
			return err
		}
		return s.activityRepo.WithTx(tx).Create(&models.ActivityLog{
			CompanyID: companyID,
			Type:      constants.ActivityLinkGenerated,
			Label:     strings.TrimSpace(input.InfluencerName),
		})
	})
	if err != nil {
		// 并发签发同一组合时由唯一约束兜底，回读已存在的链接。
		if isUniqueViolation(err) {
			existing, lookupErr := s.linkRepo.GetByOwner(influencerID, campaign.ID, companyID)
			if lookupErr == nil && existing != nil {
				return s.buildResult(campaign, existing, true), nil
			}
		}
		return nil, err
	}

	return s.buildResult(campaign, link, false), nil
}

// ClickResult 点击归因结果
type ClickResult struct {
	CampaignID   uint   `json:"campaignID"`
	InfluencerID uint   `json:"influencerID"`
	URL          string `json:"url"`
}

// TrackClick 按令牌归因一次点击：聚合计数自增并滚入当日汇总。
func (s *LinkService) TrackClick(token string, now time.Time) (*ClickResult, error) {
	link, err := s.linkRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	if err := s.linkRepo.RecordClick(link.ID, now); err != nil {
		return nil, err
	}

	return &ClickResult{
		CampaignID:   link.CampaignID,
		InfluencerID: link.InfluencerID,
		URL:          link.LandingURL,
	}, nil
}

// ListLinks 查询跟踪链接列表
func (s *LinkService) ListLinks(filter repository.TrackingLinkListFilter) ([]models.TrackingLink, int64, error) {
	return s.linkRepo.List(filter)
}

func (s *LinkService) buildResult(campaign *models.Campaign, link *models.TrackingLink, existing bool) *GeneratedLink {
	return &GeneratedLink{
		CampaignID: campaign.ID,
		Name:       campaign.Name,
		EndDate:    campaign.EndDate,
		URL:        link.GeneratedURL,
		Existing:   existing,
	}
}

func (s *LinkService) buildTrackingURL(token string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Tracking.FrontendBaseURL), "/")
	return base + "/track?token=" + token
}

func (s *LinkService) signLinkToken(influencerID, influencerName string, campaignID uint) (string, error) {
	claims := linkTokenClaims{
		Name:       strings.TrimSpace(influencerName),
		CampaignID: campaignID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strings.TrimSpace(influencerID),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Tracking.TokenSecret))
}

func parseInfluencerID(raw string) (uint, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return 0, ErrInfluencerRequired
	}
	id, err := strconv.ParseUint(normalized, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInfluencerRequired
	}
	return uint(id), nil
}

// isUniqueViolation 判断是否唯一约束冲突，兼容 sqlite 与 postgres 的报错文案。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key") ||
		strings.Contains(message, "constraint failed")
}
