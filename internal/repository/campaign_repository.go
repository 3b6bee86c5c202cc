package repository

import (
	"errors"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
)

// CampaignRepository 推广活动数据访问接口
type CampaignRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CampaignRepository

	GetByID(id uint) (*models.Campaign, error)
	GetByMLinkID(companyID uint, mlinkID string) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)

	CreateProduct(product *models.Product) error
}

// GormCampaignRepository GORM 推广活动仓储
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建推广活动仓储
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCampaignRepository) WithTx(tx *gorm.DB) CampaignRepository {
	if tx == nil {
		return r
	}
	return &GormCampaignRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCampaignRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取推广活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	if id == 0 {
		return nil, nil
	}
	var campaign models.Campaign
	if err := r.db.Preload("Products").First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// GetByMLinkID 按公司与合作方活动编号获取推广活动
func (r *GormCampaignRepository) GetByMLinkID(companyID uint, mlinkID string) (*models.Campaign, error) {
	normalized := strings.TrimSpace(mlinkID)
	if normalized == "" {
		return nil, nil
	}
	query := r.db.Preload("Products").Where("m_link_id = ?", normalized)
	if companyID != 0 {
		query = query.Where("company_id = ?", companyID)
	}
	var campaign models.Campaign
	if err := query.First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create 创建推广活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update 更新推广活动
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// List 查询推广活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{}).Preload("Products")
	if filter.CompanyID != 0 {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		query = query.Where("source = ?", source)
	}
	if filter.ActiveAt != nil {
		query = query.Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			*filter.ActiveAt, *filter.ActiveAt)
	}
	if filter.EndDateFrom != nil {
		query = query.Where("end_date >= ?", *filter.EndDateFrom)
	}
	if filter.EndDateTo != nil {
		query = query.Where("end_date <= ?", *filter.EndDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Campaign
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateProduct 创建活动商品
func (r *GormCampaignRepository) CreateProduct(product *models.Product) error {
	return r.db.Create(product).Error
}
