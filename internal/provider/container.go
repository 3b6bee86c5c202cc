package provider

import (
	"github.com/Kerimcan19/InfluencerAgency/internal/authz"
	"github.com/Kerimcan19/InfluencerAgency/internal/cache"
	"github.com/Kerimcan19/InfluencerAgency/internal/config"
	"github.com/Kerimcan19/InfluencerAgency/internal/logger"
	"github.com/Kerimcan19/InfluencerAgency/internal/mlink"
	"github.com/Kerimcan19/InfluencerAgency/internal/models"
	"github.com/Kerimcan19/InfluencerAgency/internal/queue"
	"github.com/Kerimcan19/InfluencerAgency/internal/repository"
	"github.com/Kerimcan19/InfluencerAgency/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	CompanyRepo     repository.CompanyRepository
	InfluencerRepo  repository.InfluencerRepository
	CampaignRepo    repository.CampaignRepository
	LinkRepo        repository.LinkRepository
	ReportRepo      repository.ReportRepository
	ActivityLogRepo repository.ActivityLogRepository
	DashboardRepo   repository.DashboardRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	EmailService      *service.EmailService
	LinkService       *service.LinkService
	ReportService     *service.ReportService
	ImportService     *service.ImportService
	CampaignService   *service.CampaignService
	CompanyService    *service.CompanyService
	InfluencerService *service.InfluencerService
	DashboardService  *service.DashboardService
	MLinkClient       *mlink.Client
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CompanyRepo = repository.NewCompanyRepository(db)
	c.InfluencerRepo = repository.NewInfluencerRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.LinkRepo = repository.NewLinkRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.ActivityLogRepo = repository.NewActivityLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)

	// 密码重置邮件优先走队列，队列关闭时同步发送
	var resetSender service.PasswordResetSender = c.EmailService
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		resetSender = newQueuedResetSender(c.QueueClient)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CompanyRepo, c.InfluencerRepo, resetSender)
	c.LinkService = service.NewLinkService(c.Config, c.LinkRepo, c.CampaignRepo, c.ActivityLogRepo)
	c.ReportService = service.NewReportService(c.ReportRepo, c.CampaignRepo, c.InfluencerRepo, c.ActivityLogRepo)
	c.ImportService = service.NewImportService(c.CampaignRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.ActivityLogRepo)
	c.CompanyService = service.NewCompanyService(c.CompanyRepo, c.UserRepo, c.AuthService)
	c.InfluencerService = service.NewInfluencerService(c.InfluencerRepo, c.UserRepo, c.AuthService, resetSender)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.ActivityLogRepo)
	c.MLinkClient = mlink.NewClient(&c.Config.MLink)
}

// queuedResetSender 通过异步队列投递重置邮件
type queuedResetSender struct {
	client *queue.Client
}

func newQueuedResetSender(client *queue.Client) *queuedResetSender {
	return &queuedResetSender{client: client}
}

// SendPasswordReset 入队密码重置邮件任务
func (s *queuedResetSender) SendPasswordReset(email, resetURL string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
		Email:    email,
		ResetURL: resetURL,
	})
}
