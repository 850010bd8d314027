package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/phillyslice/phillyslice/internal/constants"
	"github.com/phillyslice/phillyslice/internal/models"
	"github.com/phillyslice/phillyslice/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Item{},
		&models.ItemSize{},
		&models.Topping{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCatalogService(
		repository.NewCategoryRepository(db),
		repository.NewItemRepository(db),
		repository.NewToppingRepository(db),
		time.Minute,
	)
	return svc, db
}

func TestCatalogServiceCategoriesAndItems(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCartCatalog(t, db)
	ctx := context.Background()

	categories, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "pizza" {
		t.Fatalf("unexpected categories: %+v", categories)
	}

	items, err := svc.Items(ctx, "pizza")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "classic-cheese" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(items[0].Sizes) != 2 {
		t.Fatalf("expected sizes preloaded, got: %d", len(items[0].Sizes))
	}

	// 未知分类：空列表而不是错误
	items, err = svc.Items(ctx, "calzones")
	if err != nil {
		t.Fatalf("unknown category should not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list for unknown category, got: %d", len(items))
	}
}

func TestCatalogServiceItemDetail(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCartCatalog(t, db)
	ctx := context.Background()

	detail, err := svc.ItemDetail(ctx, "classic-cheese")
	if err != nil {
		t.Fatalf("item detail failed: %v", err)
	}
	if detail.Item.Slug != "classic-cheese" {
		t.Fatalf("unexpected item: %+v", detail.Item)
	}

	cheeses := detail.Toppings[constants.ToppingCategoryCheese]
	if len(cheeses) != 1 || cheeses[0].Name != "Mozzarella" {
		t.Fatalf("unexpected cheese toppings: %+v", cheeses)
	}
	if !cheeses[0].IsDefault {
		t.Fatal("mozzarella should be marked default")
	}
	if cheeses[0].Label != "Mozzarella (+$1.00)" {
		t.Fatalf("unselected default should keep plain label, got: %q", cheeses[0].Label)
	}

	// 芝士牛肉堡专属配料不出现在披萨详情里
	for _, meat := range detail.Toppings[constants.ToppingCategoryMeat] {
		if meat.Name == "Ribeye" {
			t.Fatal("cheesesteak-only topping leaked into pizza detail")
		}
	}

	if _, err := svc.ItemDetail(ctx, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestCatalogServiceCoercesNegativePrices(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	category := models.Category{ID: 1, Slug: "pizza", Name: "Pizza"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	item := models.Item{
		ID:         1,
		CategoryID: 1,
		Slug:       "bad-price",
		Name:       "Bad Price",
		BasePrice:  models.NewMoneyFromDecimal(decimal.RequireFromString("-5.00")),
		ItemType:   constants.ItemTypePizza,
		IsActive:   true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	items, err := svc.Items(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got: %d", len(items))
	}
	if !items[0].BasePrice.Decimal.Equal(decimal.Zero) {
		t.Fatalf("negative base price must be coerced to zero, got: %s", items[0].BasePrice)
	}
}
