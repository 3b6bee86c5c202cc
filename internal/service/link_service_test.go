package service

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestGenerateLinkIdempotentPerOwner(t *testing.T) {
	svc, db := setupLinkServiceTest(t)

	company := createLinkTestCompany(t, db, "Glow Brands")
	influencer := createLinkTestInfluencer(t, db, "selin")
	campaign := createLinkTestCampaign(t, db, company.ID, "Spring Launch")

	input := GenerateLinkInput{
		InfluencerID:   strconv.FormatUint(uint64(influencer.ID), 10),
		InfluencerName: influencer.DisplayName,
		CampaignID:     campaign.ID,
		ActorRole:      constants.RoleAdmin,
	}

	first, err := svc.GenerateLink(input)
	if err != nil {
		t.Fatalf("first issuance failed: %v", err)
	}
	if first.Existing {
		t.Fatalf("expected fresh link on first issuance")
	}
	if first.URL == "" || first.CampaignID != campaign.ID {
		t.Fatalf("unexpected issuance result: %+v", first)
	}

	second, err := svc.GenerateLink(input)
	if err != nil {
		t.Fatalf("second issuance failed: %v", err)
	}
	if !second.Existing {
		t.Fatalf("expected existing link on repeat issuance")
	}
	if second.URL != first.URL {
		t.Fatalf("expected same URL on repeat issuance, got %q vs %q", second.URL, first.URL)
	}

	var count int64
	if err := db.Model(&models.TrackingLink{}).Count(&count).Error; err != nil {
		t.Fatalf("count links failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 tracking link, got %d", count)
	}

	var logCount int64
	if err := db.Model(&models.ActivityLog{}).
		Where("type = ?", constants.ActivityLinkGenerated).
		Count(&logCount).Error; err != nil {
		t.Fatalf("count activity logs failed: %v", err)
	}
	if logCount != 1 {
		t.Fatalf("expected 1 activity log entry after repeat issuance, got %d", logCount)
	}
}

type failingActivityLogRepo struct {
	repository.ActivityLogRepository
}

func (r failingActivityLogRepo) WithTx(tx *gorm.DB) repository.ActivityLogRepository {
	return r
}

func (r failingActivityLogRepo) Create(*models.ActivityLog) error {
	return errors.New("activity log unavailable")
}

func TestGenerateLinkRollsBackWhenLogWriteFails(t *testing.T) {
	svc, db := setupLinkServiceTest(t)

	company := createLinkTestCompany(t, db, "Atomic Co")
	influencer := createLinkTestInfluencer(t, db, "deniz")
	campaign := createLinkTestCampaign(t, db, company.ID, "Atomic Campaign")

	broken := NewLinkService(svc.cfg,
		repository.NewLinkRepository(db),
		repository.NewCampaignRepository(db),
		failingActivityLogRepo{repository.NewActivityLogRepository(db)},
	)

	_, err := broken.GenerateLink(GenerateLinkInput{
		InfluencerID:   strconv.FormatUint(uint64(influencer.ID), 10),
		InfluencerName: influencer.DisplayName,
		CampaignID:     campaign.ID,
		ActorRole:      constants.RoleAdmin,
	})
	if err == nil {
		t.Fatal("expected issuance to fail when the log write fails")
	}

	var linkCount int64
	if err := db.Model(&models.TrackingLink{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links failed: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("link row must not survive a failed log write, got %d rows", linkCount)
	}
	var logCount int64
	if err := db.Model(&models.ActivityLog{}).Count(&logCount).Error; err != nil {
		t.Fatalf("count activity logs failed: %v", err)
	}
	if logCount != 0 {
		t.Fatalf("expected no activity log rows, got %d", logCount)
	}
}

func TestGenerateLinkCampaignMissing(t *testing.T) {
	svc, _ := setupLinkServiceTest(t)

	_, err := svc.GenerateLink(GenerateLinkInput{
		InfluencerID: "1",
		CampaignID:   999,
		ActorRole:    constants.RoleAdmin,
	})
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected campaign not found, got %v", err)
	}
}

func TestGenerateLinkCompanyScope(t *testing.T) {
	svc, db := setupLinkServiceTest(t)

	owner := createLinkTestCompany(t, db, "Owner Co")
	other := createLinkTestCompany(t, db, "Other Co")
	influencer := createLinkTestInfluencer(t, db, "mert")
	campaign := createLinkTestCampaign(t, db, owner.ID, "Owner Campaign")

	_, err := svc.GenerateLink(GenerateLinkInput{
		InfluencerID:   strconv.FormatUint(uint64(influencer.ID), 10),
		CampaignID:     campaign.ID,
		ActorRole:      constants.RoleCompany,
		ActorCompanyID: other.ID,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for foreign company, got %v", err)
	}

	result, err := svc.GenerateLink(GenerateLinkInput{
		InfluencerID:   strconv.FormatUint(uint64(influencer.ID), 10),
		CampaignID:     campaign.ID,
		ActorRole:      constants.RoleCompany,
		ActorCompanyID: owner.ID,
	})
	if err != nil {
		t.Fatalf("issuance by owning company failed: %v", err)
	}
	if result.Existing {
		t.Fatalf("expected fresh link for owning company")
	}
}

func TestTrackClickAccumulatesDailyRollup(t *testing.T) {
	svc, db := setupLinkServiceTest(t)

	company := createLinkTestCompany(t, db, "Click Co")
	influencer := createLinkTestInfluencer(t, db, "lara")
	campaign := createLinkTestCampaign(t, db, company.ID, "Click Campaign")

	_, err := svc.GenerateLink(GenerateLinkInput{
		InfluencerID: strconv.FormatUint(uint64(influencer.ID), 10),
		CampaignID:   campaign.ID,
		ActorRole:    constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("issuance failed: %v", err)
	}

	var link models.TrackingLink
	if err := db.Where("campaign_id = ?", campaign.ID).First(&link).Error; err != nil {
		t.Fatalf("load link failed: %v", err)
	}

	now := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		result, err := svc.TrackClick(link.Token, now)
		if err != nil {
			t.Fatalf("click %d failed: %v", i+1, err)
		}
		if result.CampaignID != campaign.ID || result.InfluencerID != influencer.ID {
			t.Fatalf("unexpected attribution: %+v", result)
		}
	}

	var reloaded models.TrackingLink
	if err := db.First(&reloaded, link.ID).Error; err != nil {
		t.Fatalf("reload link failed: %v", err)
	}
	if reloaded.ClickCount != 3 {
		t.Fatalf("expected click_count 3, got %d", reloaded.ClickCount)
	}

	daily, err := repository.NewLinkRepository(db).GetDailyClicks(link.ID, now)
	if err != nil {
		t.Fatalf("load daily row failed: %v", err)
	}
	if daily == nil || daily.Clicks != 3 {
		t.Fatalf("expected daily clicks 3, got %+v", daily)
	}
}

func TestTrackClickUnknownToken(t *testing.T) {
	svc, _ := setupLinkServiceTest(t)

	_, err := svc.TrackClick("no-such-token", time.Now())
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected link not found, got %v", err)
	}
}

func setupLinkServiceTest(t *testing.T) (*LinkService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:link_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Influencer{},
		&models.Campaign{},
		&models.Product{},
		&models.TrackingLink{},
		&models.LinkClicksDaily{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		Tracking: config.TrackingConfig{
			FrontendBaseURL: "http://localhost:5173",
			TokenSecret:     "link-test-secret",
		},
	}
	svc := NewLinkService(cfg,
		repository.NewLinkRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewActivityLogRepository(db),
	)
	return svc, db
}

func createLinkTestCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()

	row := models.Company{Name: name, Active: true}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	return row
}

func createLinkTestInfluencer(t *testing.T, db *gorm.DB, username string) models.Influencer {
	t.Helper()

	row := models.Influencer{
		DisplayName: username,
		Username:    username,
		Active:      true,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}
	return row
}

func createLinkTestCampaign(t *testing.T, db *gorm.DB, companyID uint, name string) models.Campaign {
	t.Helper()

	end := time.Now().AddDate(0, 1, 0)
	row := models.Campaign{
		Name:      name,
		CompanyID: &companyID,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   &end,
		Source:    constants.SourceLocal,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return row
}
