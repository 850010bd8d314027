package service

import (
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

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Item{},
		&models.ItemSize{},
		&models.Topping{},
		&models.Cart{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewItemRepository(db),
		repository.NewToppingRepository(db),
	)
	return svc, db
}

func seedCartCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	category := models.Category{ID: 1, Slug: "pizza", Name: "Pizza"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	item := models.Item{
		ID:                1,
		CategoryID:        1,
		Slug:              "classic-cheese",
		Name:              "Classic Cheese",
		BasePrice:         models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")),
		ItemType:          constants.ItemTypePizza,
		DefaultToppingIDs: models.UintArray{1},
		IsActive:          true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	sizes := []models.ItemSize{
		{ID: 1, ItemID: 1, Name: `Medium (13")`, PriceAdjustment: models.NewMoneyFromDecimal(decimal.Zero)},
		{ID: 2, ItemID: 1, Name: `Family (17")`, PriceAdjustment: models.NewMoneyFromDecimal(decimal.RequireFromString("4.00"))},
	}
	if err := db.Create(&sizes).Error; err != nil {
		t.Fatalf("create sizes failed: %v", err)
	}
	toppings := []models.Topping{
		{ID: 1, Name: "Mozzarella", Category: constants.ToppingCategoryCheese, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("1.00")), ItemType: constants.ItemTypeBoth, IsActive: true},
		{ID: 2, Name: "Mushrooms", Category: constants.ToppingCategoryVeggie, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("1.50")), ItemType: constants.ItemTypePizza, IsActive: true},
		{ID: 3, Name: "Onions", Category: constants.ToppingCategoryVeggie, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("1.00")), ItemType: constants.ItemTypeBoth, VeggieState: constants.VeggieStateBoth, IsActive: true},
		{ID: 4, Name: "Ribeye", Category: constants.ToppingCategoryMeat, Price: models.NewMoneyFromDecimal(decimal.RequireFromString("3.00")), ItemType: constants.ItemTypeCheesesteak, IsActive: true},
	}
	if err := db.Create(&toppings).Error; err != nil {
		t.Fatalf("create toppings failed: %v", err)
	}
}

func TestCartServiceAddLineMergesRegardlessOfToppingOrder(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-merge"

	cart, err := svc.AddLine(token, AddLineInput{
		ItemID: 1,
		SizeID: 1,
		Toppings: []ToppingInput{
			{ToppingID: 2},
			{ToppingID: 3, IsGrilled: boolPtr(true)},
		},
	})
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Fatalf("unexpected cart after first add: %+v", cart.Lines)
	}

	// 同一配置但配料顺序相反
	cart, err = svc.AddLine(token, AddLineInput{
		ItemID: 1,
		SizeID: 1,
		Toppings: []ToppingInput{
			{ToppingID: 3, IsGrilled: boolPtr(true)},
			{ToppingID: 2},
		},
	})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected merged single line, got: %d lines", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 after merge, got: %d", cart.Lines[0].Quantity)
	}
}

func TestCartServiceAddLineVariantSplitsSignature(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-variant"

	if _, err := svc.AddLine(token, AddLineInput{
		ItemID:   1,
		SizeID:   1,
		Toppings: []ToppingInput{{ToppingID: 3, IsGrilled: boolPtr(true)}},
	}); err != nil {
		t.Fatalf("grilled add failed: %v", err)
	}
	cart, err := svc.AddLine(token, AddLineInput{
		ItemID:   1,
		SizeID:   1,
		Toppings: []ToppingInput{{ToppingID: 3, IsGrilled: boolPtr(false)}},
	})
	if err != nil {
		t.Fatalf("natural add failed: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("grilled and natural variants must not merge, got: %d lines", len(cart.Lines))
	}
}

func TestCartServiceAddLineResolvesLabels(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)

	cart, err := svc.AddLine("session-labels", AddLineInput{
		ItemID: 1,
		SizeID: 1,
		Toppings: []ToppingInput{
			{ToppingID: 1},
			{ToppingID: 3, IsGrilled: boolPtr(true)},
		},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	toppings := cart.Lines[0].Toppings
	if toppings[0].Name != "XTRA-Mozzarella" {
		t.Fatalf("expected default topping labeled XTRA-, got: %q", toppings[0].Name)
	}
	if toppings[1].Name != "Grilled Onions" {
		t.Fatalf("expected grilled prefix, got: %q", toppings[1].Name)
	}
}

func TestCartServiceAddLineValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)

	cases := []struct {
		name    string
		input   AddLineInput
		wantErr error
	}{
		{"unknown item", AddLineInput{ItemID: 99, SizeID: 1}, ErrItemNotFound},
		{"unknown size", AddLineInput{ItemID: 1, SizeID: 99}, ErrSizeNotFound},
		{"unknown topping", AddLineInput{ItemID: 1, SizeID: 1, Toppings: []ToppingInput{{ToppingID: 99}}}, ErrToppingNotFound},
		{"type mismatch", AddLineInput{ItemID: 1, SizeID: 1, Toppings: []ToppingInput{{ToppingID: 4}}}, ErrToppingTypeMismatch},
		{"variant unsupported", AddLineInput{ItemID: 1, SizeID: 1, Toppings: []ToppingInput{{ToppingID: 2, IsGrilled: boolPtr(true)}}}, ErrVariantNotSupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddLine("session-validation", tc.input); err != tc.wantErr {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCartServiceUpdateQuantityFloorsAtOne(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-quantity"

	cart, err := svc.AddLine(token, AddLineInput{ItemID: 1, SizeID: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lineID := cart.Lines[0].CartID

	cart, err = svc.UpdateQuantity(token, lineID, 0)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("quantity below 1 must be a no-op, got: %d", cart.Lines[0].Quantity)
	}

	cart, err = svc.UpdateQuantity(token, lineID, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got: %d", cart.Lines[0].Quantity)
	}

	// 未知行ID：幂等无操作
	if _, err := svc.UpdateQuantity(token, "missing", 3); err != nil {
		t.Fatalf("unknown line update should be a no-op, got: %v", err)
	}
}

func TestCartServiceRemoveLineIdempotent(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-remove"

	cart, err := svc.AddLine(token, AddLineInput{ItemID: 1, SizeID: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	lineID := cart.Lines[0].CartID

	cart, err = svc.RemoveLine(token, lineID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got: %d lines", len(cart.Lines))
	}

	cart, err = svc.RemoveLine(token, lineID)
	if err != nil {
		t.Fatalf("second remove should be a no-op, got: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got: %d lines", len(cart.Lines))
	}
}

func TestCartServiceUpdateToppingsNeverRemerges(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-edit"

	if _, err := svc.AddLine(token, AddLineInput{
		ItemID:   1,
		SizeID:   1,
		Toppings: []ToppingInput{{ToppingID: 2}},
	}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	cart, err := svc.AddLine(token, AddLineInput{ItemID: 1, SizeID: 1})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 distinct lines, got: %d", len(cart.Lines))
	}
	editedID := cart.Lines[1].CartID

	// 编辑后与第一行配置相同，但仍保持两行独立
	cart, err = svc.UpdateToppings(token, editedID, []ToppingInput{{ToppingID: 2}})
	if err != nil {
		t.Fatalf("update toppings failed: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("edit must never re-merge lines, got: %d lines", len(cart.Lines))
	}
	if cart.Lines[1].CartID != editedID {
		t.Fatalf("edited line ID must be stable, got: %s", cart.Lines[1].CartID)
	}
	if len(cart.Lines[1].Toppings) != 1 || cart.Lines[1].Toppings[0].ToppingID != 2 {
		t.Fatalf("unexpected toppings after edit: %+v", cart.Lines[1].Toppings)
	}
}

func TestCartServiceDiscountLifecycle(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-discount"

	if _, err := svc.AddLine(token, AddLineInput{ItemID: 1, SizeID: 2, Toppings: []ToppingInput{{ToppingID: 2}}, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.SetDiscount(token, "mystery", decimal.NewFromInt(10)); err != ErrDiscountInvalid {
		t.Fatalf("expected ErrDiscountInvalid, got: %v", err)
	}

	cart, err := svc.SetDiscount(token, constants.DiscountTypePromo, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("set discount failed: %v", err)
	}
	if !cart.DiscountPercent.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected percent clamped to 100, got: %s", cart.DiscountPercent)
	}

	cart, err = svc.SetDiscount(token, constants.DiscountTypePromo, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("set discount failed: %v", err)
	}
	summary := svc.Summarize(cart)
	if summary.Subtotal.String() != "32.80" {
		t.Fatalf("expected subtotal 32.80, got: %s", summary.Subtotal)
	}
	if summary.Total.String() != "29.52" {
		t.Fatalf("expected total 29.52, got: %s", summary.Total)
	}

	cart, err = svc.ClearDiscount(token)
	if err != nil {
		t.Fatalf("clear discount failed: %v", err)
	}
	if cart.HasDiscount() {
		t.Fatal("expected discount cleared")
	}
	summary = svc.Summarize(cart)
	if summary.Total.String() != summary.Subtotal.String() {
		t.Fatalf("expected total == subtotal, got: %s vs %s", summary.Total, summary.Subtotal)
	}
}

func TestCartServicePersistsAcrossLoads(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	seedCartCatalog(t, db)
	token := "session-persist"

	if _, err := svc.AddLine(token, AddLineInput{
		ItemID:   1,
		SizeID:   2,
		Toppings: []ToppingInput{{ToppingID: 3, IsGrilled: boolPtr(true)}},
	}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	reloaded, err := svc.Get(token)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(reloaded.Lines) != 1 {
		t.Fatalf("expected 1 persisted line, got: %d", len(reloaded.Lines))
	}
	line := reloaded.Lines[0]
	if line.Size.Name != `Family (17")` {
		t.Fatalf("unexpected size snapshot: %+v", line.Size)
	}
	if len(line.Toppings) != 1 || line.Toppings[0].IsGrilled == nil || !*line.Toppings[0].IsGrilled {
		t.Fatalf("grilled state must survive persistence: %+v", line.Toppings)
	}
}
