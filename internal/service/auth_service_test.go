package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type recordingResetSender struct {
	emails []string
	urls   []string
}

func (s *recordingResetSender) SendPasswordReset(email, resetURL string) error {
	s.emails = append(s.emails, email)
	s.urls = append(s.urls, resetURL)
	return nil
}

func TestLoginIssuesScopedToken(t *testing.T) {
	svc, db, _ := setupAuthServiceTest(t)

	company := models.Company{Name: "Token Co", Active: true}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	hash, err := svc.HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user := models.User{
		Username:     "brand-login",
		PasswordHash: hash,
		Role:         constants.RoleCompany,
		CompanyID:    &company.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	loggedIn, token, expiresAt, err := svc.Login("brand-login", "Passw0rd!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID || token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected login result: user=%d token=%q", loggedIn.ID, token)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleCompany || claims.CompanyID != company.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Purpose != "" {
		t.Fatalf("access token must not carry a purpose, got %q", claims.Purpose)
	}

	if _, _, _, err := svc.Login("brand-login", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login("no-such-user", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestForgotPasswordSilentOnUnknownEmail(t *testing.T) {
	svc, db, sender := setupAuthServiceTest(t)

	user := models.User{Username: "creator", PasswordHash: "hash", Role: constants.RoleInfluencer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	influencer := models.Influencer{
		DisplayName: "Creator",
		Username:    "creator",
		Email:       "creator@example.com",
		UserID:      &user.ID,
		Active:      true,
	}
	if err := db.Create(&influencer).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}

	if err := svc.ForgotPassword("nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if len(sender.emails) != 0 {
		t.Fatalf("expected no reset mail for unknown email, got %v", sender.emails)
	}

	if err := svc.ForgotPassword("Creator@Example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if len(sender.emails) != 1 || sender.emails[0] != "creator@example.com" {
		t.Fatalf("expected normalized reset mail, got %v", sender.emails)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, db, _ := setupAuthServiceTest(t)

	hash, err := svc.HashPassword("OldPass1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user := models.User{Username: "resetme", PasswordHash: hash, Role: constants.RoleInfluencer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	token, err := svc.GeneratePasswordResetToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generate reset token failed: %v", err)
	}

	if err := svc.ResetPassword(token, "NewPass1", "Different1"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	if err := svc.ResetPassword(token, "short1", "short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password error, got %v", err)
	}
	if err := svc.ResetPassword(token, "NewPass1", "NewPass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, _, _, err := svc.Login("resetme", "NewPass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// 访问令牌不能冒充重置令牌
	accessToken, _, err := svc.GenerateJWT(&user)
	if err != nil {
		t.Fatalf("generate access token failed: %v", err)
	}
	if err := svc.ResetPassword(accessToken, "NewPass2", "NewPass2"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for access token, got %v", err)
	}
	if err := svc.ResetPassword("garbage", "NewPass2", "NewPass2"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	svc, _, _ := setupAuthServiceTest(t)

	if err := svc.ValidatePassword("Abcdef12"); err != nil {
		t.Fatalf("expected compliant password accepted: %v", err)
	}
	if err := svc.ValidatePassword("abc1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected too-short rejected, got %v", err)
	}
	if err := svc.ValidatePassword("abcdefgh"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected missing digit rejected, got %v", err)
	}
	if err := svc.ValidatePassword("12345678"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected missing lowercase rejected, got %v", err)
	}
}

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB, *recordingResetSender) {
	t.Helper()

	dsn := fmt.Sprintf("file:auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.User{}, &models.Influencer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "auth-test-secret-key-0123456789abcdef",
			ExpireHours: 1,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireLower:  true,
				RequireNumber: true,
			},
		},
		Tracking: config.TrackingConfig{FrontendBaseURL: "http://localhost:5173"},
	}

	sender := &recordingResetSender{}
	svc := NewAuthService(cfg,
		repository.NewUserRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewInfluencerRepository(db),
		sender,
	)
	return svc, db, sender
}
