package repository

import (
	"errors"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
)

// UserRepository 账号数据访问接口
type UserRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) UserRepository

	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetFirstByCompanyID(companyID uint) (*models.User, error)
	Create(user *models.User) error
	UpdatePasswordHash(id uint, passwordHash string) error
	CountByRole(role string) (int64, error)
}

// GormUserRepository GORM 账号仓储
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建账号仓储
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// Transaction 执行事务
func (r *GormUserRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取账号
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, nil
	}
	var user models.User
	if err := r.db.Preload("Company").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 按用户名获取账号
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	normalized := strings.TrimSpace(username)
	if normalized == "" {
		return nil, nil
	}
	var user models.User
	if err := r.db.Preload("Company").Where("username = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetFirstByCompanyID 获取公司下最早创建的账号
func (r *GormUserRepository) GetFirstByCompanyID(companyID uint) (*models.User, error) {
	if companyID == 0 {
		return nil, nil
	}
	var user models.User
	if err := r.db.Where("company_id = ?", companyID).Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建账号
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdatePasswordHash 更新账号密码哈希
func (r *GormUserRepository) UpdatePasswordHash(id uint, passwordHash string) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// CountByRole 按角色统计账号数
func (r *GormUserRepository) CountByRole(role string) (int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Where("role = ?", strings.TrimSpace(role)).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
