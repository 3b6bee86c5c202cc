package repository

import (
	"errors"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
)

// InfluencerUpdate 达人资料可更新字段，nil 表示不修改。
type InfluencerUpdate struct {
	DisplayName    *string
	Username       *string
	Email          *string
	Phone          *string
	ProfileImage   *string
	FollowerCount  *int64
	EngagementRate *models.Money
	InstagramURL   *string
	TiktokURL      *string
	YoutubeURL     *string
	Active         *bool
}

// InfluencerRepository 达人数据访问接口
type InfluencerRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) InfluencerRepository

	GetByID(id uint) (*models.Influencer, error)
	GetByMLinkID(mlinkID string) (*models.Influencer, error)
	GetByUserID(userID uint) (*models.Influencer, error)
	GetByUsername(username string) (*models.Influencer, error)
	GetByEmail(email string) (*models.Influencer, error)
	Create(influencer *models.Influencer) error
	UpdateFields(id uint, update InfluencerUpdate) error
	Delete(id uint) error
	List(filter InfluencerListFilter) ([]models.Influencer, int64, error)
	AppendToCampaign(influencerID, campaignID uint) error
}

// GormInfluencerRepository GORM 达人仓储
type GormInfluencerRepository struct {
	db *gorm.DB
}

// NewInfluencerRepository 创建达人仓储
func NewInfluencerRepository(db *gorm.DB) *GormInfluencerRepository {
	return &GormInfluencerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInfluencerRepository) WithTx(tx *gorm.DB) InfluencerRepository {
	if tx == nil {
		return r
	}
	return &GormInfluencerRepository{db: tx}
}

// Transaction 执行事务
func (r *GormInfluencerRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取达人
func (r *GormInfluencerRepository) GetByID(id uint) (*models.Influencer, error) {
	if id == 0 {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.First(&influencer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByMLinkID 按合作方达人编号获取达人
func (r *GormInfluencerRepository) GetByMLinkID(mlinkID string) (*models.Influencer, error) {
	normalized := strings.TrimSpace(mlinkID)
	if normalized == "" {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Where("m_link_id = ?", normalized).First(&influencer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByUserID 按账号ID获取达人
func (r *GormInfluencerRepository) GetByUserID(userID uint) (*models.Influencer, error) {
	if userID == 0 {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Where("user_id = ?", userID).First(&influencer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByUsername 按用户名获取达人
func (r *GormInfluencerRepository) GetByUsername(username string) (*models.Influencer, error) {
	normalized := strings.TrimSpace(username)
	if normalized == "" {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Where("username = ?", normalized).First(&influencer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// GetByEmail 按邮箱获取达人（大小写不敏感）
func (r *GormInfluencerRepository) GetByEmail(email string) (*models.Influencer, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, nil
	}
	var influencer models.Influencer
	if err := r.db.Where("LOWER(email) = ?", normalized).First(&influencer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &influencer, nil
}

// Create 创建达人
func (r *GormInfluencerRepository) Create(influencer *models.Influencer) error {
	return r.db.Create(influencer).Error
}

// UpdateFields 按字段更新达人资料，仅更新显式提供的字段。
func (r *GormInfluencerRepository) UpdateFields(id uint, update InfluencerUpdate) error {
	if id == 0 {
		return nil
	}
	values := map[string]interface{}{}
	if update.DisplayName != nil {
		values["display_name"] = strings.TrimSpace(*update.DisplayName)
	}
	if update.Username != nil {
		values["username"] = strings.TrimSpace(*update.Username)
	}
	if update.Email != nil {
		values["email"] = strings.TrimSpace(*update.Email)
	}
	if update.Phone != nil {
		values["phone"] = strings.TrimSpace(*update.Phone)
	}
	if update.ProfileImage != nil {
		values["profile_image"] = strings.TrimSpace(*update.ProfileImage)
	}
	if update.FollowerCount != nil {
		values["follower_count"] = *update.FollowerCount
	}
	if update.EngagementRate != nil {
		values["engagement_rate"] = *update.EngagementRate
	}
	if update.InstagramURL != nil {
		values["instagram_url"] = strings.TrimSpace(*update.InstagramURL)
	}
	if update.TiktokURL != nil {
		values["tiktok_url"] = strings.TrimSpace(*update.TiktokURL)
	}
	if update.YoutubeURL != nil {
		values["youtube_url"] = strings.TrimSpace(*update.YoutubeURL)
	}
	if update.Active != nil {
		values["active"] = *update.Active
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.Model(&models.Influencer{}).Where("id = ?", id).Updates(values).Error
}

// Delete 删除达人
func (r *GormInfluencerRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Influencer{}, id).Error
}

// List 查询达人列表
func (r *GormInfluencerRepository) List(filter InfluencerListFilter) ([]models.Influencer, int64, error) {
	query := r.db.Model(&models.Influencer{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(display_name LIKE ? OR username LIKE ? OR email LIKE ?)", like, like, like)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.CampaignID != 0 {
		query = query.
			Joins("JOIN campaign_influencers ci ON ci.influencer_id = influencers.id").
			Where("ci.campaign_id = ?", filter.CampaignID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Influencer
	if err := query.Order("influencers.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// AppendToCampaign 将达人关联到推广活动，已关联时不重复写入。
func (r *GormInfluencerRepository) AppendToCampaign(influencerID, campaignID uint) error {
	if influencerID == 0 || campaignID == 0 {
		return nil
	}
	return r.db.Model(&models.Campaign{ID: campaignID}).
		Association("Influencers").
		Append(&models.Influencer{ID: influencerID})
}
