package main

import (
	"fmt"
	"time"

	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/constants"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加品牌公司
	companies := []models.Company{
		{
			Name:          "Aurora Cosmetics",
			Adres:         "Maslak Mah. Büyükdere Cad. No:12, İstanbul",
			Telefon:       "0212 555 01 01",
			Email:         "contact@auroracosmetics.example",
			VergiDairesi:  "Maslak",
			VergiNumarasi: "1234567890",
			YetkiliAdi:    "Deniz",
			YetkiliSoyadi: "Yilmaz",
			YetkiliGSM:    "0532 555 01 01",
			Active:        true,
		},
		{
			Name:    "Nordic Gear",
			Adres:   "Kozyatağı Mah. Değirmen Sok. No:5, İstanbul",
			Telefon: "0216 555 02 02",
			Email:   "hello@nordicgear.example",
			Active:  true,
		},
	}

	companyIDs := map[string]uint{}
	for _, comp := range companies {
		var existing models.Company
		if err := models.DB.Where("name = ?", comp.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&comp).Error; err != nil {
				stdLog.Printf("Failed to create company %s: %v", comp.Name, err)
				continue
			}
			stdLog.Printf("Created company: %s", comp.Name)
			companyIDs[comp.Name] = comp.ID
		} else {
			stdLog.Printf("Company already exists: %s", comp.Name)
			companyIDs[comp.Name] = existing.ID
		}
	}

	// 公司登录账号
	companyUsers := []struct {
		Username string
		Password string
		Company  string
	}{
		{Username: "aurora", Password: "aurora123", Company: "Aurora Cosmetics"},
		{Username: "nordic", Password: "nordic123", Company: "Nordic Gear"},
	}
	for _, acc := range companyUsers {
		companyID, ok := companyIDs[acc.Company]
		if !ok {
			stdLog.Printf("Skip user %s: company %s missing", acc.Username, acc.Company)
			continue
		}
		seedUser(stdLog.Printf, acc.Username, acc.Password, constants.RoleCompany, &companyID)
	}

	// 达人档案与登录账号
	influencers := []struct {
		DisplayName string
		Username    string
		Password    string
		Email       string
		Followers   int64
		Engagement  float64
		Instagram   string
	}{
		{
			DisplayName: "Selin K.",
			Username:    "selink",
			Password:    "selin123",
			Email:       "selin@creators.example",
			Followers:   182000,
			Engagement:  4.7,
			Instagram:   "https://instagram.com/selink",
		},
		{
			DisplayName: "Mert Aydin",
			Username:    "mertaydin",
			Password:    "mert123",
			Email:       "mert@creators.example",
			Followers:   94000,
			Engagement:  6.1,
			Instagram:   "https://instagram.com/mertaydin",
		},
		{
			DisplayName: "Lara B.",
			Username:    "larab",
			Password:    "lara123",
			Email:       "lara@creators.example",
			Followers:   315000,
			Engagement:  3.2,
			Instagram:   "https://instagram.com/larab",
		},
	}

	for _, item := range influencers {
		user := seedUser(stdLog.Printf, item.Username, item.Password, constants.RoleInfluencer, nil)
		if user == nil {
			continue
		}
		engagement := models.NewMoneyFromFloat(item.Engagement)
		var existing models.Influencer
		if err := models.DB.Where("username = ?", item.Username).First(&existing).Error; err != nil {
			profile := models.Influencer{
				UserID:         &user.ID,
				DisplayName:    item.DisplayName,
				Username:       item.Username,
				Email:          item.Email,
				FollowerCount:  item.Followers,
				EngagementRate: &engagement,
				InstagramURL:   item.Instagram,
				Active:         true,
			}
			if err := models.DB.Create(&profile).Error; err != nil {
				stdLog.Printf("Failed to create influencer %s: %v", item.Username, err)
			} else {
				stdLog.Printf("Created influencer: %s", item.Username)
			}
		} else {
			existing.UserID = &user.ID
			existing.DisplayName = item.DisplayName
			existing.Email = item.Email
			existing.FollowerCount = item.Followers
			existing.EngagementRate = &engagement
			existing.InstagramURL = item.Instagram
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update influencer %s: %v", item.Username, err)
			} else {
				stdLog.Printf("Updated influencer: %s", item.Username)
			}
		}
	}

	// 营销活动
	now := time.Now()
	springStart := now.AddDate(0, -1, 0)
	springEnd := now.AddDate(0, 2, 0)
	outdoorStart := now.AddDate(0, 0, -10)
	outdoorEnd := now.AddDate(0, 1, 0)
	expiredStart := now.AddDate(0, -4, 0)
	expiredEnd := now.AddDate(0, -1, 0)

	auroraID := companyIDs["Aurora Cosmetics"]
	nordicID := companyIDs["Nordic Gear"]

	campaigns := []models.Campaign{
		{
			Name:                     "Spring Glow Launch",
			Brief:                    "Yeni sezon cilt bakım serisi tanıtımı.",
			CompanyID:                &auroraID,
			BrandCommissionRate:      models.NewMoneyFromFloat(15),
			InfluencerCommissionRate: models.NewMoneyFromFloat(10),
			OtherCostsRate:           models.NewMoneyFromFloat(2.5),
			StartDate:                springStart,
			EndDate:                  &springEnd,
			Source:                   constants.SourceLocal,
		},
		{
			Name:                     "Trail Essentials",
			Brief:                    "Outdoor ekipman koleksiyonu iş birliği.",
			CompanyID:                &nordicID,
			BrandCommissionRate:      models.NewMoneyFromFloat(12),
			InfluencerCommissionRate: models.NewMoneyFromFloat(8),
			OtherCostsRate:           models.NewMoneyFromFloat(1.5),
			StartDate:                outdoorStart,
			EndDate:                  &outdoorEnd,
			Source:                   constants.SourceLocal,
		},
		{
			Name:                     "Winter Archive Sale",
			Brief:                    "Sezon sonu arşiv indirimi (süresi dolmuş demo).",
			CompanyID:                &nordicID,
			BrandCommissionRate:      models.NewMoneyFromFloat(10),
			InfluencerCommissionRate: models.NewMoneyFromFloat(6),
			OtherCostsRate:           models.NewMoneyFromFloat(1),
			StartDate:                expiredStart,
			EndDate:                  &expiredEnd,
			Source:                   constants.SourceLocal,
		},
	}

	productPlans := map[string][]models.Product{
		"Spring Glow Launch": {
			{Name: "Glow Serum 30ml", Source: constants.SourceLocal},
			{Name: "Hydra Cream SPF30", Source: constants.SourceLocal},
		},
		"Trail Essentials": {
			{Name: "Ridge 45L Backpack", Source: constants.SourceLocal},
		},
	}

	for _, camp := range campaigns {
		if camp.CompanyID == nil || *camp.CompanyID == 0 {
			stdLog.Printf("Skip campaign %s: company missing", camp.Name)
			continue
		}
		var existing models.Campaign
		if err := models.DB.Where("name = ? AND company_id = ?", camp.Name, camp.CompanyID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&camp).Error; err != nil {
				stdLog.Printf("Failed to create campaign %s: %v", camp.Name, err)
				continue
			}
			stdLog.Printf("Created campaign: %s", camp.Name)
			existing = camp
		} else {
			existing.Brief = camp.Brief
			existing.BrandCommissionRate = camp.BrandCommissionRate
			existing.InfluencerCommissionRate = camp.InfluencerCommissionRate
			existing.OtherCostsRate = camp.OtherCostsRate
			existing.StartDate = camp.StartDate
			existing.EndDate = camp.EndDate
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update campaign %s: %v", camp.Name, err)
				continue
			}
			stdLog.Printf("Updated campaign: %s", camp.Name)
		}

		for _, prod := range productPlans[existing.Name] {
			var existingProduct models.Product
			if err := models.DB.Where("campaign_id = ? AND name = ?", existing.ID, prod.Name).First(&existingProduct).Error; err != nil {
				prod.CampaignID = existing.ID
				if err := models.DB.Create(&prod).Error; err != nil {
					stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
				} else {
					stdLog.Printf("Created product: %s", prod.Name)
				}
			}
		}
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 2 Companies with login accounts")
	fmt.Println("- 3 Influencers with login accounts")
	fmt.Println("- 3 Campaigns (1 expired) with products")
}

// seedUser 按用户名幂等创建登录账号
func seedUser(printf func(string, ...interface{}), username, password, role string, companyID *uint) *models.User {
	var existing models.User
	if err := models.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		printf("User already exists: %s", username)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		printf("Failed to hash password for %s: %v", username, err)
		return nil
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CompanyID:    companyID,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		printf("Failed to create user %s: %v", username, err)
		return nil
	}
	printf("Created user: %s (%s)", username, role)
	return &user
}
