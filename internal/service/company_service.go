package service

import (
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"gorm.io/gorm"
)

// CompanyService 公司管理业务服务
type CompanyService struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	authService *AuthService
}

// NewCompanyService 创建公司管理服务
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	authService *AuthService,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		authService: authService,
	}
}

// CreateCompanyInput 公司创建输入，同时开通首个公司账号。
type CreateCompanyInput struct {
	Name          string
	Adres         string
	Telefon       string
	GSM           string
	Faks          string
	Email         string
	VergiDairesi  string
	VergiNumarasi string
	YetkiliAdi    string
	YetkiliSoyadi string
	YetkiliGSM    string

	Username string
	Password string
}

// CreateCompany 创建公司与配套登录账号（同事务）
func (s *CompanyService) CreateCompany(input CreateCompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCompanyNameEmpty
	}

	existing, err := s.companyRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCompanyNameExists
	}

	username := strings.TrimSpace(input.Username)
	if username != "" {
		conflict, err := s.userRepo.GetByUsername(username)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, ErrUsernameExists
		}
	}

	company := &models.Company{
		Name:          name,
		Adres:         input.Adres,
		Telefon:       input.Telefon,
		GSM:           input.GSM,
		Faks:          input.Faks,
		Email:         strings.TrimSpace(input.Email),
		VergiDairesi:  input.VergiDairesi,
		VergiNumarasi: input.VergiNumarasi,
		YetkiliAdi:    input.YetkiliAdi,
		YetkiliSoyadi: input.YetkiliSoyadi,
		YetkiliGSM:    input.YetkiliGSM,
		Active:        true,
	}

	err = s.companyRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.companyRepo.WithTx(tx).Create(company); err != nil {
			return err
		}
		if username == "" {
			return nil
		}
		hash, err := s.authService.HashPassword(input.Password)
		if err != nil {
			return err
		}
		companyID := company.ID
		return s.userRepo.WithTx(tx).Create(&models.User{
			Username:     username,
			PasswordHash: hash,
			Role:         constants.RoleCompany,
			CompanyID:    &companyID,
		})
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// CompanyUpdate 公司可更新字段，nil 表示不修改。
type CompanyUpdate struct {
	Name          *string
	Adres         *string
	Telefon       *string
	GSM           *string
	Faks          *string
	Email         *string
	VergiDairesi  *string
	VergiNumarasi *string
	YetkiliAdi    *string
	YetkiliSoyadi *string
	YetkiliGSM    *string
	Active        *bool
}

// UpdateCompany 更新公司资料，名称变更时校验唯一性。
func (s *CompanyService) UpdateCompany(id uint, update CompanyUpdate) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, ErrCompanyNameEmpty
		}
		if name != company.Name {
			conflict, err := s.companyRepo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if conflict != nil && conflict.ID != id {
				return nil, ErrCompanyNameExists
			}
		}
		company.Name = name
	}
	if update.Adres != nil {
		company.Adres = *update.Adres
	}
	if update.Telefon != nil {
		company.Telefon = *update.Telefon
	}
	if update.GSM != nil {
		company.GSM = *update.GSM
	}
	if update.Faks != nil {
		company.Faks = *update.Faks
	}
	if update.Email != nil {
		company.Email = strings.TrimSpace(*update.Email)
	}
	if update.VergiDairesi != nil {
		company.VergiDairesi = *update.VergiDairesi
	}
	if update.VergiNumarasi != nil {
		company.VergiNumarasi = *update.VergiNumarasi
	}
	if update.YetkiliAdi != nil {
		company.YetkiliAdi = *update.YetkiliAdi
	}
	if update.YetkiliSoyadi != nil {
		company.YetkiliSoyadi = *update.YetkiliSoyadi
	}
	if update.YetkiliGSM != nil {
		company.YetkiliGSM = *update.YetkiliGSM
	}
	if update.Active != nil {
		company.Active = *update.Active
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// AddCompanyUser 为既有公司追加登录账号
func (s *CompanyService) AddCompanyUser(companyID uint, username, password string) (*models.User, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}

	normalized := strings.TrimSpace(username)
	conflict, err := s.userRepo.GetByUsername(normalized)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrUsernameExists
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     normalized,
		PasswordHash: hash,
		Role:         constants.RoleCompany,
		CompanyID:    &companyID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetCompany 查询单个公司
func (s *CompanyService) GetCompany(id uint) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrNotFound
	}
	return company, nil
}

// ListCompanies 查询公司列表
func (s *CompanyService) ListCompanies(filter repository.CompanyListFilter) ([]models.Company, int64, error) {
	return s.companyRepo.List(filter)
}
