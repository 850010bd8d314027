package service

import (
	"strings"

	"github.com/phillyslice/phillyslice/internal/models"

	"github.com/shopspring/decimal"
)

// 规格名称中编码的配料价格档位
var (
	multiplierPersonal = decimal.RequireFromString("0.85")
	multiplierFamily   = decimal.RequireFromString("1.60")
	multiplierRegular  = decimal.NewFromInt(1)

	percentBase = decimal.NewFromInt(100)
)

// SizeMultiplier 按规格名称返回配料价格倍率。
// 倍率只作用于配料价格，不作用于基础价和规格加价。
func SizeMultiplier(sizeName string) decimal.Decimal {
	switch {
	case strings.Contains(sizeName, "Personal"):
		return multiplierPersonal
	case strings.Contains(sizeName, "Family"):
		return multiplierFamily
	default:
		return multiplierRegular
	}
}

// LineUnitPrice 计算购物车行单份价格（中间结果不舍入）：
// basePrice + size.priceAdjustment + Σ topping.price × multiplier(size)
func LineUnitPrice(line models.CartLine) decimal.Decimal {
	unit := line.BasePrice.Decimal.Add(line.Size.PriceAdjustment.Decimal)
	multiplier := SizeMultiplier(line.Size.Name)
	for _, topping := range line.Toppings {
		unit = unit.Add(topping.Price.Decimal.Mul(multiplier))
	}
	return unit
}

// LineTotal 计算购物车行合计（单份价格 × 数量）
func LineTotal(line models.CartLine) decimal.Decimal {
	return LineUnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartSubtotal 计算购物车小计
func CartSubtotal(lines []models.CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineTotal(line))
	}
	return subtotal
}

// CartTotal 计算购物车应付合计。折扣只在聚合时应用，不落到行上。
func CartTotal(cart *models.Cart) decimal.Decimal {
	subtotal := CartSubtotal(cart.Lines)
	if !cart.HasDiscount() {
		return subtotal
	}
	factor := percentBase.Sub(cart.DiscountPercent.Decimal).Div(percentBase)
	return subtotal.Mul(factor)
}

// ClampDiscountPercent 将折扣百分比收敛到 [0,100]
func ClampDiscountPercent(percent decimal.Decimal) decimal.Decimal {
	if percent.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if percent.GreaterThan(percentBase) {
		return percentBase
	}
	return percent
}
