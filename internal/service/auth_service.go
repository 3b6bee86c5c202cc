package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetSender 密码重置通知发送方
type PasswordResetSender interface {
	SendPasswordReset(email, resetURL string) error
}

// AuthService 认证服务
type AuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	influencerRepo repository.InfluencerRepository
	resetSender    PasswordResetSender
}

// NewAuthService 创建认证服务实例
func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	influencerRepo repository.InfluencerRepository,
	resetSender PasswordResetSender,
) *AuthService {
	return &AuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		influencerRepo: influencerRepo,
		resetSender:    resetSender,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	CompanyID uint   `json:"company_id,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成访问令牌
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	companyID := uint(0)
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	claims := JWTClaims{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// GeneratePasswordResetToken 生成密码重置令牌
func (s *AuthService) GeneratePasswordResetToken(userID uint, role string) (string, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)
	claims := JWTClaims{
		UserID:  userID,
		Role:    role,
		Purpose: constants.TokenPurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

// ParseJWT 解析访问令牌
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Login 账号登录
func (s *AuthService) Login(username, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	return user, token, expiresAt, nil
}

// Profile 当前账号信息，info 按角色返回公司或达人档案。
type Profile struct {
	User *models.User `json:"user"`
	Info interface{}  `json:"info"`
}

// GetProfile 查询当前账号信息
func (s *AuthService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	result := &Profile{User: user}
	switch user.Role {
	case constants.RoleAdmin:
		result.Info = constants.RoleAdmin
	case constants.RoleCompany:
		if user.CompanyID != nil {
			company, err := s.companyRepo.GetByID(*user.CompanyID)
			if err != nil {
				return nil, err
			}
			result.Info = company
		}
	case constants.RoleInfluencer:
		influencer, err := s.influencerRepo.GetByUserID(user.ID)
		if err != nil {
			return nil, err
		}
		result.Info = influencer
	default:
		return nil, ErrForbidden
	}
	return result, nil
}

// BuildPasswordResetURL 拼接密码重置前端地址
func (s *AuthService) BuildPasswordResetURL(token string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Tracking.FrontendBaseURL), "/")
	return base + "/reset-password?token=" + token
}

// ForgotPassword 按邮箱发起密码重置。找不到账号时静默成功，避免账号枚举。
func (s *AuthService) ForgotPassword(email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil
	}

	user, err := s.findUserByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.GeneratePasswordResetToken(user.ID, user.Role)
	if err != nil {
		return err
	}
	resetURL := s.BuildPasswordResetURL(token)

	if s.resetSender == nil {
		logger.Warnw("password_reset_sender_missing", "email", normalized)
		return nil
	}
	if err := s.resetSender.SendPasswordReset(normalized, resetURL); err != nil {
		logger.Errorw("password_reset_send_failed", "email", normalized, "error", err)
	}
	return nil
}

// findUserByEmail 依次尝试公司邮箱、达人邮箱，最后回退到用户名等于邮箱的账号。
func (s *AuthService) findUserByEmail(email string) (*models.User, error) {
	company, err := s.companyRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if company != nil {
		user, err := s.userRepo.GetFirstByCompanyID(company.ID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	influencer, err := s.influencerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if influencer != nil && influencer.UserID != nil {
		user, err := s.userRepo.GetByID(*influencer.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}

	return s.userRepo.GetByUsername(email)
}

// ResetPassword 使用重置令牌设置新密码
func (s *AuthService) ResetPassword(token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	claims, err := s.ParseJWT(token)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.Purpose != constants.TokenPurposePasswordReset {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordHash(user.ID, hash)
}
