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

func TestCreateReportInfluencerSelfOnly(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	company := createReportTestCompany(t, db, "Report Co")
	campaign := createReportTestCampaign(t, db, company.ID, "Report Campaign")
	user := createReportTestUser(t, db, "selink", constants.RoleInfluencer, nil)
	self := createReportTestInfluencer(t, db, "selink", &user.ID)
	other := createReportTestInfluencer(t, db, "mertaydin", nil)

	report, err := svc.CreateReport(CreateReportInput{
		InfluencerID: other.ID, // 达人指定他人ID时必须被忽略
		CampaignID:   campaign.ID,
		TotalClicks:  120,
		TotalSales:   8,

		InfluencerCommissionAmount: models.NewMoneyFromFloat(350),

		ActorRole:   constants.RoleInfluencer,
		ActorUserID: user.ID,
	})
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}
	if report.InfluencerID == nil || *report.InfluencerID != self.ID {
		t.Fatalf("expected report attributed to self %d, got %+v", self.ID, report.InfluencerID)
	}
	if report.CompanyID == nil || *report.CompanyID != company.ID {
		t.Fatalf("expected company snapshot %d, got %+v", company.ID, report.CompanyID)
	}
}

func TestCreateReportAdminRequiresInfluencer(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	company := createReportTestCompany(t, db, "Admin Co")
	campaign := createReportTestCampaign(t, db, company.ID, "Admin Campaign")

	if _, err := svc.CreateReport(CreateReportInput{
		CampaignID: campaign.ID,
		ActorRole:  constants.RoleAdmin,
	}); !errors.Is(err, ErrInfluencerRequired) {
		t.Fatalf("expected influencer required, got %v", err)
	}

	if _, err := svc.CreateReport(CreateReportInput{
		InfluencerID: 1,
		CampaignID:   campaign.ID,
		ActorRole:    constants.RoleCompany,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for company role, got %v", err)
	}
}

func TestGetReportsScopedByRole(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	companyA := createReportTestCompany(t, db, "Brand A")
	companyB := createReportTestCompany(t, db, "Brand B")
	campaignA := createReportTestCampaign(t, db, companyA.ID, "Campaign A")
	campaignB := createReportTestCampaign(t, db, companyB.ID, "Campaign B")

	userA := createReportTestUser(t, db, "creator-a", constants.RoleInfluencer, nil)
	influencerA := createReportTestInfluencer(t, db, "creator-a", &userA.ID)
	influencerB := createReportTestInfluencer(t, db, "creator-b", nil)

	createReportTestReport(t, db, influencerA.ID, campaignA.ID, companyA.ID, 100)
	createReportTestReport(t, db, influencerB.ID, campaignA.ID, companyA.ID, 250)
	createReportTestReport(t, db, influencerB.ID, campaignB.ID, companyB.ID, 400)

	// 达人只看到自己的记录
	mine, err := svc.GetReports(ReportQueryInput{
		ActorRole:   constants.RoleInfluencer,
		ActorUserID: userA.ID,
	})
	if err != nil {
		t.Fatalf("influencer query failed: %v", err)
	}
	if len(mine.Reports) != 1 {
		t.Fatalf("expected 1 own report, got %d", len(mine.Reports))
	}

	// 公司强制限定到自身公司，忽略显式 CompanyID
	forCompanyA, err := svc.GetReports(ReportQueryInput{
		CompanyID:      companyB.ID,
		ActorRole:      constants.RoleCompany,
		ActorCompanyID: companyA.ID,
	})
	if err != nil {
		t.Fatalf("company query failed: %v", err)
	}
	if len(forCompanyA.Reports) != 2 {
		t.Fatalf("expected 2 reports for own company, got %d", len(forCompanyA.Reports))
	}
	if forCompanyA.ActiveInfluencers != 2 {
		t.Fatalf("expected 2 active influencers, got %d", forCompanyA.ActiveInfluencers)
	}
	if forCompanyA.TotalInfluencerCommission.String() != "350" {
		t.Fatalf("expected total commission 350, got %s", forCompanyA.TotalInfluencerCommission.String())
	}

	// 管理员可跨公司并显式限定
	forCompanyB, err := svc.GetReports(ReportQueryInput{
		CompanyID: companyB.ID,
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin query failed: %v", err)
	}
	if len(forCompanyB.Reports) != 1 {
		t.Fatalf("expected 1 report for company B, got %d", len(forCompanyB.Reports))
	}

	all, err := svc.GetReports(ReportQueryInput{ActorRole: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("admin unscoped query failed: %v", err)
	}
	if len(all.Reports) != 3 {
		t.Fatalf("expected 3 reports unscoped, got %d", len(all.Reports))
	}
}

func TestGetReportsDateWindow(t *testing.T) {
	svc, db := setupReportServiceTest(t)

	company := createReportTestCompany(t, db, "Window Co")
	campaign := createReportTestCampaign(t, db, company.ID, "Window Campaign")
	influencer := createReportTestInfluencer(t, db, "window-creator", nil)

	inWindow := createReportTestReport(t, db, influencer.ID, campaign.ID, company.ID, 100)
	boundaryDay := time.Date(2026, 6, 15, 23, 50, 0, 0, time.UTC)
	if err := db.Model(&models.Report{}).Where("id = ?", inWindow.ID).
		Update("created_at", boundaryDay).Error; err != nil {
		t.Fatalf("backdate report failed: %v", err)
	}

	outOfWindow := createReportTestReport(t, db, influencer.ID, campaign.ID, company.ID, 200)
	if err := db.Model(&models.Report{}).Where("id = ?", outOfWindow.ID).
		Update("created_at", time.Date(2026, 6, 16, 0, 10, 0, 0, time.UTC)).Error; err != nil {
		t.Fatalf("backdate report failed: %v", err)
	}

	// EndDate 为闭区间：当天 23:50 的记录命中，次日凌晨的不命中
	result, err := svc.GetReports(ReportQueryInput{
		StartDate: "01.06.2026",
		EndDate:   "15.06.2026",
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("windowed query failed: %v", err)
	}
	if len(result.Reports) != 1 || result.Reports[0].ID != inWindow.ID {
		t.Fatalf("expected only boundary-day report, got %d rows", len(result.Reports))
	}

	if _, err := svc.GetReports(ReportQueryInput{
		StartDate: "2026-06-01",
		ActorRole: constants.RoleAdmin,
	}); !errors.Is(err, ErrInvalidStartDate) {
		t.Fatalf("expected invalid start date, got %v", err)
	}
	if _, err := svc.GetReports(ReportQueryInput{
		EndDate:   "15/06/2026",
		ActorRole: constants.RoleAdmin,
	}); !errors.Is(err, ErrInvalidEndDate) {
		t.Fatalf("expected invalid end date, got %v", err)
	}
}

func TestGetReportsEmptySummaryZeroed(t *testing.T) {
	svc, _ := setupReportServiceTest(t)

	result, err := svc.GetReports(ReportQueryInput{ActorRole: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("empty query failed: %v", err)
	}
	if len(result.Reports) != 0 || result.ActiveInfluencers != 0 {
		t.Fatalf("expected zeroed summary, got %+v", result)
	}
}

func setupReportServiceTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:report_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Influencer{},
		&models.Campaign{},
		&models.Product{},
		&models.Report{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	svc := NewReportService(
		repository.NewReportRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewInfluencerRepository(db),
		repository.NewActivityLogRepository(db),
	)
	return svc, db
}

func createReportTestCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()

	row := models.Company{Name: name, Active: true}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	return row
}

func createReportTestCampaign(t *testing.T, db *gorm.DB, companyID uint, name string) models.Campaign {
	t.Helper()

	row := models.Campaign{
		Name:      name,
		CompanyID: &companyID,
		StartDate: time.Now().AddDate(0, -1, 0),
		Source:    constants.SourceLocal,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return row
}

func createReportTestUser(t *testing.T, db *gorm.DB, username, role string, companyID *uint) models.User {
	t.Helper()

	row := models.User{
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
		CompanyID:    companyID,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return row
}

func createReportTestInfluencer(t *testing.T, db *gorm.DB, username string, userID *uint) models.Influencer {
	t.Helper()

	row := models.Influencer{
		DisplayName: username,
		Username:    username,
		UserID:      userID,
		Active:      true,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}
	return row
}

func createReportTestReport(t *testing.T, db *gorm.DB, influencerID, campaignID, companyID uint, commission float64) models.Report {
	t.Helper()

	row := models.Report{
		InfluencerID:               &influencerID,
		CampaignID:                 campaignID,
		CompanyID:                  &companyID,
		TotalClicks:                10,
		TotalSales:                 2,
		InfluencerCommissionAmount: models.NewMoneyFromFloat(commission),
		Source:                     constants.SourceLocal,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create report failed: %v", err)
	}
	return row
}
