package main

import (
	"context"

	"github.com/phillyslice/phillyslice/internal/cache"
	"github.com/phillyslice/phillyslice/internal/config"
	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/logger"
	"github.com/phillyslice/phillyslice/internal/models"

	"github.com/shopspring/decimal"
)

func money(s string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(s))
}

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

	// 分类
	categories := []models.Category{
		{Slug: "pizza", Name: "Pizza", SortOrder: 1},
		{Slug: "cheesesteaks", Name: "Cheesesteaks", SortOrder: 2},
	}
	for i := range categories {
		if err := models.DB.Where("slug = ?", categories[i].Slug).
			FirstOrCreate(&categories[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed category %s: %v", categories[i].Slug, err)
		}
	}
	pizzaCategory, cheesesteakCategory := categories[0], categories[1]

	// 配料
	toppings := []models.Topping{
		{Name: "Mozzarella", Category: constants.ToppingCategoryCheese, Price: money("1.00"), ItemType: constants.ItemTypePizza, IsActive: true, SortOrder: 1},
		{Name: "Provolone", Category: constants.ToppingCategoryCheese, Price: money("1.00"), ItemType: constants.ItemTypeBoth, IsActive: true, SortOrder: 2},
		{Name: "Whiz", Category: constants.ToppingCategoryCheese, Price: money("1.25"), ItemType: constants.ItemTypeCheesesteak, IsActive: true, SortOrder: 3},
		{Name: "American", Category: constants.ToppingCategoryCheese, Price: money("1.00"), ItemType: constants.ItemTypeCheesesteak, IsActive: true, SortOrder: 4},
		{Name: "Pepperoni", Category: constants.ToppingCategoryMeat, Price: money("2.00"), ItemType: constants.ItemTypePizza, IsActive: true, SortOrder: 1},
		{Name: "Italian Sausage", Category: constants.ToppingCategoryMeat, Price: money("2.00"), ItemType: constants.ItemTypePizza, IsActive: true, SortOrder: 2},
		{Name: "Bacon", Category: constants.ToppingCategoryMeat, Price: money("2.25"), ItemType: constants.ItemTypeBoth, IsActive: true, SortOrder: 3},
		{Name: "Ribeye", Category: constants.ToppingCategoryMeat, Price: money("3.00"), ItemType: constants.ItemTypeCheesesteak, IsActive: true, SortOrder: 4},
		{Name: "Mushrooms", Category: constants.ToppingCategoryVeggie, Price: money("1.50"), ItemType: constants.ItemTypeBoth, VeggieState: constants.VeggieStateBoth, IsActive: true, SortOrder: 1},
		{Name: "Onions", Category: constants.ToppingCategoryVeggie, Price: money("1.00"), ItemType: constants.ItemTypeBoth, VeggieState: constants.VeggieStateBoth, IsActive: true, SortOrder: 2},
		{Name: "Bell Peppers", Category: constants.ToppingCategoryVeggie, Price: money("1.00"), ItemType: constants.ItemTypeBoth, VeggieState: constants.VeggieStateBoth, IsActive: true, SortOrder: 3},
		{Name: "Black Olives", Category: constants.ToppingCategoryVeggie, Price: money("1.25"), ItemType: constants.ItemTypePizza, VeggieState: constants.VeggieStateNatural, IsActive: true, SortOrder: 4},
		{Name: "Hot Cherry Peppers", Category: constants.ToppingCategoryVeggie, Price: money("1.25"), ItemType: constants.ItemTypeCheesesteak, VeggieState: constants.VeggieStateNatural, IsActive: true, SortOrder: 5},
	}
	byName := make(map[string]uint, len(toppings))
	for i := range toppings {
		if err := models.DB.Where("name = ?", toppings[i].Name).
			FirstOrCreate(&toppings[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed topping %s: %v", toppings[i].Name, err)
		}
		byName[toppings[i].Name] = toppings[i].ID
	}

	// 单品与规格
	pizzaSizes := []models.ItemSize{
		{Name: `Personal (10")`, PriceAdjustment: money("-2.00"), SortOrder: 1},
		{Name: `Medium (13")`, PriceAdjustment: money("0.00"), SortOrder: 2},
		{Name: `Large (15")`, PriceAdjustment: money("2.00"), SortOrder: 3},
		{Name: `Family (17")`, PriceAdjustment: money("4.00"), SortOrder: 4},
	}
	steakSizes := []models.ItemSize{
		{Name: `Half (7")`, PriceAdjustment: money("-1.50"), SortOrder: 1},
		{Name: `Classic (9")`, PriceAdjustment: money("0.00"), SortOrder: 2},
		{Name: `Footlong (12")`, PriceAdjustment: money("3.00"), SortOrder: 3},
	}

	items := []models.Item{
		{
			CategoryID:        pizzaCategory.ID,
			Slug:              "classic-cheese",
			Name:              "Classic Cheese",
			Description:       "Red sauce and a mozzarella blend on our hand-stretched dough.",
			BasePrice:         money("10.00"),
			ItemType:          constants.ItemTypePizza,
			DefaultToppingIDs: models.UintArray{byName["Mozzarella"]},
			IsActive:          true,
			SortOrder:         1,
			Sizes:             clone(pizzaSizes),
		},
		{
			CategoryID:        pizzaCategory.ID,
			Slug:              "pepperoni-feast",
			Name:              "Pepperoni Feast",
			Description:       "Double pepperoni over bubbling mozzarella.",
			BasePrice:         money("12.50"),
			ItemType:          constants.ItemTypePizza,
			DefaultToppingIDs: models.UintArray{byName["Mozzarella"], byName["Pepperoni"]},
			IsActive:          true,
			SortOrder:         2,
			Sizes:             clone(pizzaSizes),
		},
		{
			CategoryID:        pizzaCategory.ID,
			Slug:              "garden-veggie",
			Name:              "Garden Veggie",
			Description:       "Mushrooms, onions and bell peppers, grilled on request.",
			BasePrice:         money("11.50"),
			ItemType:          constants.ItemTypePizza,
			DefaultToppingIDs: models.UintArray{byName["Mozzarella"], byName["Mushrooms"], byName["Bell Peppers"]},
			IsActive:          true,
			SortOrder:         3,
			Sizes:             clone(pizzaSizes),
		},
		{
			CategoryID:        cheesesteakCategory.ID,
			Slug:              "south-philly-classic",
			Name:              "South Philly Classic",
			Description:       "Thin-sliced ribeye with your choice of cheese on an Amoroso roll.",
			BasePrice:         money("9.50"),
			ItemType:          constants.ItemTypeCheesesteak,
			DefaultToppingIDs: models.UintArray{byName["Ribeye"], byName["Whiz"]},
			IsActive:          true,
			SortOrder:         1,
			Sizes:             clone(steakSizes),
		},
		{
			CategoryID:        cheesesteakCategory.ID,
			Slug:              "mushroom-provolone",
			Name:              "Mushroom Provolone",
			Description:       "Ribeye topped with grilled mushrooms and sharp provolone.",
			BasePrice:         money("10.50"),
			ItemType:          constants.ItemTypeCheesesteak,
			DefaultToppingIDs: models.UintArray{byName["Ribeye"], byName["Provolone"], byName["Mushrooms"]},
			IsActive:          true,
			SortOrder:         2,
			Sizes:             clone(steakSizes),
		},
	}
	for i := range items {
		if err := models.DB.Where("slug = ?", items[i].Slug).
			FirstOrCreate(&items[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed item %s: %v", items[i].Slug, err)
		}
	}

	// 菜单数据变更后失效缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("seed_init_redis_failed", "error", err)
	} else if err := cache.InvalidateMenu(context.Background()); err != nil {
		logger.Warnw("seed_invalidate_menu_failed", "error", err)
	}

	stdLog.Printf("Seed completed: %d categories, %d toppings, %d items", len(categories), len(toppings), len(items))
}

func clone(sizes []models.ItemSize) []models.ItemSize {
	out := make([]models.ItemSize, len(sizes))
	copy(out, sizes)
	return out
}
