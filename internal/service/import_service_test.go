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

func TestImportCampaignsUpsertByExternalID(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	company := createImportTestCompany(t, db, "Import Co")

	items := []ImportCampaignItem{
		{
			ID:                          float64(501),
			Name:                        "Summer Push",
			Brief:                       "Seasonal partner feed",
			BrandCampaignCommissionRate: models.NewMoneyFromFloat(15),
			InfluencerCommissionRate:    models.NewMoneyFromFloat(10),
			OtherCostsRate:              models.NewMoneyFromFloat(2),
			EndDate:                     "30.09.2026",
			Products: []ImportProductItem{
				{Name: "Sunscreen SPF50", Image: "https://cdn.example/sunscreen.jpg"},
			},
		},
		{
			ID:   "502",
			Name: "Autumn Push",
		},
	}

	result, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:     items,
		CompanyID: company.ID,
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if result.Count != 2 {
		t.Fatalf("expected 2 imported, got %d", result.Count)
	}

	// 同一批数据重复导入不产生新行
	items[0].Brief = "Updated brief"
	items[0].Products = append(items[0].Products, ImportProductItem{Name: "After Sun Lotion"})
	again, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:     items,
		CompanyID: company.ID,
		ActorRole: constants.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("repeat import failed: %v", err)
	}
	if again.Count != 2 {
		t.Fatalf("expected 2 upserted on repeat, got %d", again.Count)
	}

	var campaignCount int64
	if err := db.Model(&models.Campaign{}).Count(&campaignCount).Error; err != nil {
		t.Fatalf("count campaigns failed: %v", err)
	}
	if campaignCount != 2 {
		t.Fatalf("expected 2 campaigns after repeat import, got %d", campaignCount)
	}

	var summer models.Campaign
	if err := db.Preload("Products").Where("m_link_id = ?", "501").First(&summer).Error; err != nil {
		t.Fatalf("load imported campaign failed: %v", err)
	}
	if summer.Brief != "Updated brief" {
		t.Fatalf("expected brief updated, got %q", summer.Brief)
	}
	if summer.Source != constants.SourceMLink {
		t.Fatalf("expected mlink source, got %q", summer.Source)
	}
	if summer.EndDate == nil || summer.EndDate.Format(constants.FilterDateLayout) != "30.09.2026" {
		t.Fatalf("unexpected end date: %v", summer.EndDate)
	}
	if len(summer.Products) != 2 {
		t.Fatalf("expected products merged by name to 2, got %d", len(summer.Products))
	}
}

func TestImportCampaignsProductsMergeByName(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	company := createImportTestCompany(t, db, "Merge Co")

	item := ImportCampaignItem{
		ID:   "601",
		Name: "Merge Campaign",
		Products: []ImportProductItem{
			{Name: "Widget"},
			{Name: "Widget"},
			{Name: "  "},
			{Name: "Gadget"},
		},
	}
	if _, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:     []ImportCampaignItem{item},
		CompanyID: company.ID,
		ActorRole: constants.RoleAdmin,
	}); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if productCount != 2 {
		t.Fatalf("expected duplicate and blank names skipped, got %d products", productCount)
	}
}

func TestImportCampaignsScope(t *testing.T) {
	svc, db := setupImportServiceTest(t)
	company := createImportTestCompany(t, db, "Scoped Co")

	if _, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:     []ImportCampaignItem{{ID: "701", Name: "Nope"}},
		ActorRole: constants.RoleInfluencer,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for influencer, got %v", err)
	}

	if _, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:     []ImportCampaignItem{{ID: "701", Name: "Nope"}},
		ActorRole: constants.RoleAdmin,
	}); !errors.Is(err, ErrCompanyRequired) {
		t.Fatalf("expected company required for admin without target, got %v", err)
	}

	// 公司角色强制归属自身公司，忽略载荷中的 CompanyID
	other := createImportTestCompany(t, db, "Other Co")
	if _, err := svc.ImportCampaigns(ImportCampaignsInput{
		Items:          []ImportCampaignItem{{ID: "702", Name: "Mine"}},
		CompanyID:      other.ID,
		ActorRole:      constants.RoleCompany,
		ActorCompanyID: company.ID,
	}); err != nil {
		t.Fatalf("company import failed: %v", err)
	}

	var imported models.Campaign
	if err := db.Where("m_link_id = ?", "702").First(&imported).Error; err != nil {
		t.Fatalf("load imported campaign failed: %v", err)
	}
	if imported.CompanyID == nil || *imported.CompanyID != company.ID {
		t.Fatalf("expected campaign owned by actor company %d, got %+v", company.ID, imported.CompanyID)
	}
}

func setupImportServiceTest(t *testing.T) (*ImportService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:import_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Campaign{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewImportService(repository.NewCampaignRepository(db)), db
}

func createImportTestCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()

	row := models.Company{Name: name, Active: true}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	return row
}
