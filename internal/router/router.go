package router

import (
	"fmt"
	"strings"

	"github.com/phillyslice/phillyslice/internal/cache"
	"github.com/phillyslice/phillyslice/internal/config"
	publichandlers "github.com/phillyslice/phillyslice/internal/http/handlers/public"
	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ps"
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Checkout.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Checkout.RateLimit.MaxRequests,
		Message:       "too many checkout attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（菜单图片）
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		public := apiV1.Group("/public")
		{
			// 菜单目录
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/items", publicHandler.GetItems)
			public.GET("/items/:slug", publicHandler.GetItemBySlug)
			public.POST("/items/:slug/quote", publicHandler.QuoteItem)

			// 购物车与结账（按会话标识隔离）
			session := public.Group("")
			session.Use(CartSessionMiddleware(cfg.Session))
			{
				session.GET("/cart", publicHandler.GetCart)
				session.POST("/cart/lines", publicHandler.AddCartLine)
				session.DELETE("/cart/lines/:cart_id", publicHandler.RemoveCartLine)
				session.PUT("/cart/lines/:cart_id/quantity", publicHandler.UpdateCartLineQuantity)
				session.PUT("/cart/lines/:cart_id/toppings", publicHandler.UpdateCartLineToppings)
				session.PUT("/cart/lines/:cart_id/instructions", publicHandler.UpdateCartLineInstructions)
				session.DELETE("/cart", publicHandler.ClearCart)
				session.POST("/cart/discount", publicHandler.SetCartDiscount)
				session.DELETE("/cart/discount", publicHandler.ClearCartDiscount)
				session.POST("/checkout", RateLimitMiddleware(cache.Client(), checkoutRule, KeyBySession), publicHandler.SubmitCheckout)
			}
		}
	}

	return r
}
