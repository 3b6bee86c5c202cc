package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestCreateCampaignRecordsActivity(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	company := createCampaignTestCompany(t, db, "Create Co")

	end := time.Now().AddDate(0, 1, 0)
	campaign, err := svc.CreateCampaign(CreateCampaignInput{
		Name:                     "Fresh Drop",
		Brief:                    "New collection",
		BrandCommissionRate:      models.NewMoneyFromFloat(15),
		InfluencerCommissionRate: models.NewMoneyFromFloat(10),
		EndDate:                  &end,
		CompanyID:                company.ID,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	if campaign.ID == 0 || campaign.Source != constants.SourceLocal {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}

	var activity models.ActivityLog
	if err := db.Where("company_id = ?", company.ID).First(&activity).Error; err != nil {
		t.Fatalf("load activity failed: %v", err)
	}
	if activity.Type != constants.ActivityCampaignStarted || activity.Label != "Fresh Drop" {
		t.Fatalf("unexpected activity: %+v", activity)
	}

	if _, err := svc.CreateCampaign(CreateCampaignInput{Name: "No Company"}); !errors.Is(err, ErrCompanyRequired) {
		t.Fatalf("expected company required, got %v", err)
	}
}

func TestListCampaignsScopedByRole(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)

	companyA := createCampaignTestCompany(t, db, "Scope A")
	companyB := createCampaignTestCompany(t, db, "Scope B")

	running := time.Now().AddDate(0, 1, 0)
	expired := time.Now().AddDate(0, -1, 0)
	createCampaignTestCampaign(t, db, companyA.ID, "Running A", &running)
	createCampaignTestCampaign(t, db, companyA.ID, "Expired A", &expired)
	createCampaignTestCampaign(t, db, companyB.ID, "Running B", &running)

	companyRows, _, err := svc.ListCampaigns(CampaignQueryInput{
		ActorRole:      constants.RoleCompany,
		ActorCompanyID: companyA.ID,
		CompanyID:      companyB.ID, // 公司角色必须忽略显式指定
	})
	if err != nil {
		t.Fatalf("company list failed: %v", err)
	}
	if len(companyRows) != 2 {
		t.Fatalf("expected 2 own campaigns, got %d", len(companyRows))
	}

	// 达人只看到进行中的活动（跨公司）
	influencerRows, _, err := svc.ListCampaigns(CampaignQueryInput{
		ActorRole: constants.RoleInfluencer,
	})
	if err != nil {
		t.Fatalf("influencer list failed: %v", err)
	}
	if len(influencerRows) != 2 {
		t.Fatalf("expected 2 running campaigns, got %d", len(influencerRows))
	}
	for _, row := range influencerRows {
		if row.EndDate != nil && row.EndDate.Before(time.Now()) {
			t.Fatalf("expired campaign leaked to influencer: %s", row.Name)
		}
	}

	adminRows, _, err := svc.ListCampaigns(CampaignQueryInput{ActorRole: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminRows) != 3 {
		t.Fatalf("expected all 3 campaigns for admin, got %d", len(adminRows))
	}
}

func TestListCampaignsEndDateFilters(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	company := createCampaignTestCompany(t, db, "Filter Co")

	june := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	sept := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	createCampaignTestCampaign(t, db, company.ID, "Ends June", &june)
	createCampaignTestCampaign(t, db, company.ID, "Ends September", &sept)

	rows, _, err := svc.ListCampaigns(CampaignQueryInput{
		StartDate: "01.07.2026",
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Ends September" {
		t.Fatalf("expected only September campaign, got %d rows", len(rows))
	}

	rows, _, err = svc.ListCampaigns(CampaignQueryInput{
		EndDate:   "30.06.2026",
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Ends June" {
		t.Fatalf("expected only June campaign, got %d rows", len(rows))
	}

	if _, _, err := svc.ListCampaigns(CampaignQueryInput{
		StartDate: "2026-07-01",
		ActorRole: constants.RoleAdmin,
	}); !errors.Is(err, ErrInvalidStartDate) {
		t.Fatalf("expected invalid start date, got %v", err)
	}
	if _, _, err := svc.ListCampaigns(CampaignQueryInput{
		EndDate:   "junk",
		ActorRole: constants.RoleAdmin,
	}); !errors.Is(err, ErrInvalidEndDate) {
		t.Fatalf("expected invalid end date, got %v", err)
	}
}

func setupCampaignServiceTest(t *testing.T) (*CampaignService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:campaign_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Campaign{},
		&models.Product{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewCampaignService(
		repository.NewCampaignRepository(db),
		repository.NewActivityLogRepository(db),
	)
	return svc, db
}

func createCampaignTestCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()

	row := models.Company{Name: name, Active: true}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	return row
}

func createCampaignTestCampaign(t *testing.T, db *gorm.DB, companyID uint, name string, endDate *time.Time) models.Campaign {
	t.Helper()

	row := models.Campaign{
		Name:      name,
		CompanyID: &companyID,
		StartDate: time.Now().AddDate(0, -2, 0),
		EndDate:   endDate,
		Source:    constants.SourceLocal,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return row
}
