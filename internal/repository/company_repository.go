package repository

import (
	"errors"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"gorm.io/gorm"
)

// CompanyRepository 公司数据访问接口
type CompanyRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CompanyRepository

	GetByID(id uint) (*models.Company, error)
	GetByName(name string) (*models.Company, error)
	GetByEmail(email string) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	Delete(id uint) error
	List(filter CompanyListFilter) ([]models.Company, int64, error)
}

// GormCompanyRepository GORM 公司仓储
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository 创建公司仓储
func NewCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCompanyRepository) WithTx(tx *gorm.DB) CompanyRepository {
	if tx == nil {
		return r
	}
	return &GormCompanyRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCompanyRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取公司
func (r *GormCompanyRepository) GetByID(id uint) (*models.Company, error) {
	if id == 0 {
		return nil, nil
	}
	var company models.Company
	if err := r.db.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// GetByName 按名称获取公司
func (r *GormCompanyRepository) GetByName(name string) (*models.Company, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return nil, nil
	}
	var company models.Company
	if err := r.db.Where("name = ?", normalized).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// GetByEmail 按邮箱获取公司（大小写不敏感）
func (r *GormCompanyRepository) GetByEmail(email string) (*models.Company, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, nil
	}
	var company models.Company
	if err := r.db.Where("LOWER(email) = ?", normalized).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// Create 创建公司
func (r *GormCompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// Update 更新公司
func (r *GormCompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// Delete 删除公司
func (r *GormCompanyRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Company{}, id).Error
}

// List 查询公司列表
func (r *GormCompanyRepository) List(filter CompanyListFilter) ([]models.Company, int64, error) {
	query := r.db.Model(&models.Company{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(name LIKE ? OR email LIKE ? OR yetkili_adi LIKE ?)", like, like, like)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Company
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
