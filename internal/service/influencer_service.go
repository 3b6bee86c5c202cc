package service

import (
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"gorm.io/gorm"
)

// InfluencerService 达人管理业务服务
type InfluencerService struct {
	influencerRepo repository.InfluencerRepository
	userRepo       repository.UserRepository
	authService    *AuthService
	resetSender    PasswordResetSender
}

// NewInfluencerService 创建达人管理服务
func NewInfluencerService(
	influencerRepo repository.InfluencerRepository,
	userRepo repository.UserRepository,
	authService *AuthService,
	resetSender PasswordResetSender,
) *InfluencerService {
	return &InfluencerService{
		influencerRepo: influencerRepo,
		userRepo:       userRepo,
		authService:    authService,
		resetSender:    resetSender,
	}
}

// AddInfluencerInput 达人创建输入
type AddInfluencerInput struct {
	DisplayName  string
	Username     string
	Email        string
	Phone        string
	ProfileImage string
	Active       bool
}

// AddInfluencerResult 达人创建结果，重置链接便于开发联调。
type AddInfluencerResult struct {
	InfluencerID uint   `json:"influencerId"`
	UserID       uint   `json:"userId"`
	ResetURL     string `json:"resetUrl"`
}

// AddInfluencer 创建达人档案与登录账号，并发送密码设置邮件。
// 账号以随机临时密码落库，达人通过邮件中的重置链接设置自己的密码。
func (s *InfluencerService) AddInfluencer(input AddInfluencerInput) (*AddInfluencerResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if conflict, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, ErrUsernameExists
	}
	if conflict, err := s.influencerRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if conflict != nil {
		return nil, ErrUsernameExists
	}
	if email != "" {
		if conflict, err := s.influencerRepo.GetByEmail(email); err != nil {
			return nil, err
		} else if conflict != nil {
			return nil, ErrEmailExists
		}
	}

	tempPassword, err := randomTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.authService.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         constants.RoleInfluencer,
	}
	influencer := &models.Influencer{
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		ProfileImage: input.ProfileImage,
		Active:       input.Active,
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		userID := user.ID
		influencer.UserID = &userID
		return s.influencerRepo.WithTx(tx).Create(influencer)
	})
	if err != nil {
		return nil, err
	}

	token, err := s.authService.GeneratePasswordResetToken(user.ID, constants.RoleInfluencer)
	if err != nil {
		return nil, err
	}
	resetURL := s.authService.BuildPasswordResetURL(token)

	// 邮件发送失败不回滚创建，仅记录告警。
	if email != "" && s.resetSender != nil {
		if err := s.resetSender.SendPasswordReset(email, resetURL); err != nil {
			logger.Warnw("influencer_reset_email_failed", "email", email, "error", err)
		}
	}

	return &AddInfluencerResult{
		InfluencerID: influencer.ID,
		UserID:       user.ID,
		ResetURL:     resetURL,
	}, nil
}

// GetInfluencer 查询单个达人
func (s *InfluencerService) GetInfluencer(id uint) (*models.Influencer, error) {
	influencer, err := s.influencerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrInfluencerNotFound
	}
	return influencer, nil
}

// ListInfluencers 查询达人列表
func (s *InfluencerService) ListInfluencers(filter repository.InfluencerListFilter) ([]models.Influencer, int64, error) {
	return s.influencerRepo.List(filter)
}

// UpdateInfluencerInput 达人更新输入
type UpdateInfluencerInput struct {
	Update        repository.InfluencerUpdate
	ResetPassword bool
}

// UpdateInfluencerResult 达人更新结果
type UpdateInfluencerResult struct {
	Influencer *models.Influencer `json:"influencer"`
	ResetURL   string             `json:"resetUrl,omitempty"`
}

// UpdateInfluencer 更新达人资料，可选同时签发密码重置链接。
func (s *InfluencerService) UpdateInfluencer(id uint, input UpdateInfluencerInput) (*UpdateInfluencerResult, error) {
	influencer, err := s.influencerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, ErrInfluencerNotFound
	}

	if err := s.influencerRepo.UpdateFields(id, input.Update); err != nil {
		return nil, err
	}

	resetURL := ""
	if input.ResetPassword && influencer.UserID != nil {
		token, err := s.authService.GeneratePasswordResetToken(*influencer.UserID, constants.RoleInfluencer)
		if err != nil {
			return nil, err
		}
		resetURL = s.authService.BuildPasswordResetURL(token)
	}

	updated, err := s.influencerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &UpdateInfluencerResult{Influencer: updated, ResetURL: resetURL}, nil
}

// randomTempPassword 生成随机临时密码
func randomTempPassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
