package provider

import (
	"time"

	"github.com/phillyslice/phillyslice/internal/cache"
	"github.com/phillyslice/phillyslice/internal/config"
	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/queue"
	"github.com/phillyslice/phillyslice/internal/repository"
	"github.com/phillyslice/phillyslice/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CategoryRepo repository.CategoryRepository
	ItemRepo     repository.ItemRepository
	ToppingRepo  repository.ToppingRepository
	CartRepo     repository.CartRepository

	// Services
	CatalogService  *service.CatalogService
	QuoteService    *service.QuoteService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.ToppingRepo = repository.NewToppingRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	menuTTL := time.Duration(c.Config.Catalog.MenuCacheTTLSeconds) * time.Second
	c.CatalogService = service.NewCatalogService(c.CategoryRepo, c.ItemRepo, c.ToppingRepo, menuTTL)
	c.QuoteService = service.NewQuoteService(c.ItemRepo, c.ToppingRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ItemRepo, c.ToppingRepo)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.QueueClient)
}
