package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"gorm.io/gorm"
)

// ImportService 外部活动数据对账导入服务
type ImportService struct {
	campaignRepo repository.CampaignRepository
}

// NewImportService 创建导入服务
func NewImportService(campaignRepo repository.CampaignRepository) *ImportService {
	return &ImportService{campaignRepo: campaignRepo}
}

// ImportProductItem 导入的活动商品条目
type ImportProductItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ImportCampaignItem 导入的活动条目，与外部联盟平台返回结构对齐。
type ImportCampaignItem struct {
	ID                          interface{}         `json:"id"`
	Name                        string              `json:"name"`
	Brief                       string              `json:"brief"`
	BrandCampaignCommissionRate models.Money        `json:"brandCampaignCommissionRate"`
	InfluencerCommissionRate    models.Money        `json:"influencerCommissionRate"`
	OtherCostsRate              models.Money        `json:"otherCostsRate"`
	EndDate                     string              `json:"endDate"`
	BrandingImage               string              `json:"brandingImage"`
	Products                    []ImportProductItem `json:"products"`
}

// ImportCampaignsInput 导入输入
type ImportCampaignsInput struct {
	Items     []ImportCampaignItem
	CompanyID uint // 管理员指定；公司角色强制取自身公司

	ActorRole      string
	ActorCompanyID uint
}

// ImportCampaignsResult 导入结果
type ImportCampaignsResult struct {
	Count int `json:"count"`
}

// ImportCampaigns 按 (外部编号, 公司) 对活动做 upsert 合并，全量在单事务内完成。
// 重复导入同一批数据不会产生新行，商品按名称追加、不删除既有商品。
func (s *ImportService) ImportCampaigns(input ImportCampaignsInput) (*ImportCampaignsResult, error) {
	if input.ActorRole != constants.RoleAdmin && input.ActorRole != constants.RoleCompany {
		return nil, ErrForbidden
	}

	companyID := input.CompanyID
	if input.ActorRole == constants.RoleCompany {
		companyID = input.ActorCompanyID
	}
	if companyID == 0 {
		return nil, ErrCompanyRequired
	}

	imported := 0
	now := time.Now().UTC()

	err := s.campaignRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.campaignRepo.WithTx(tx)
		for _, item := range input.Items {
			mlinkID := stringifyExternalID(item.ID)
			if mlinkID == "" {
				continue
			}

			campaign, err := repo.GetByMLinkID(companyID, mlinkID)
			if err != nil {
				return err
			}
			isNew := campaign == nil
			if isNew {
				campaign = &models.Campaign{
					MLinkID:   &mlinkID,
					CompanyID: &companyID,
				}
			}

			if name := strings.TrimSpace(item.Name); name != "" {
				campaign.Name = name
			}
			campaign.Brief = item.Brief
			campaign.BrandCommissionRate = item.BrandCampaignCommissionRate
			campaign.InfluencerCommissionRate = item.InfluencerCommissionRate
			campaign.OtherCostsRate = item.OtherCostsRate
			campaign.EndDate = parseFeedDate(item.EndDate)

			branding := strings.TrimSpace(item.BrandingImage)
			if branding == "" && len(item.Products) > 0 {
				branding = strings.TrimSpace(item.Products[0].Image)
			}
			campaign.BrandingImage = branding

			campaign.Source = constants.SourceMLink
			campaign.SourcePayloadJSON = feedPayload(item)
			campaign.LastSyncedAt = &now

			if isNew {
				if err := repo.Create(campaign); err != nil {
					return err
				}
			} else {
				if err := repo.Update(campaign); err != nil {
					return err
				}
			}

			existingNames := make(map[string]struct{}, len(campaign.Products))
			for _, p := range campaign.Products {
				existingNames[p.Name] = struct{}{}
			}
			for _, p := range item.Products {
				name := strings.TrimSpace(p.Name)
				if name == "" {
					continue
				}
				if _, ok := existingNames[name]; ok {
					continue
				}
				product := &models.Product{
					Name:       name,
					Image:      strings.TrimSpace(p.Image),
					CampaignID: campaign.ID,
					Source:     constants.SourceMLink,
				}
				if err := repo.CreateProduct(product); err != nil {
					return err
				}
				existingNames[name] = struct{}{}
			}

			imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportCampaignsResult{Count: imported}, nil
}

// stringifyExternalID 外部编号可能是数字或字符串，统一转为字符串键。
func stringifyExternalID(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	case json.Number:
		return v.String()
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// parseFeedDate 解析 DD.MM.YYYY，无法解析时返回 nil。
func parseFeedDate(raw string) *time.Time {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return nil
	}
	t, err := time.Parse(constants.FilterDateLayout, normalized)
	if err != nil {
		return nil
	}
	return &t
}

// feedPayload 把条目原样落库为 JSON 快照
func feedPayload(item ImportCampaignItem) models.JSON {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return models.JSON(payload)
}
