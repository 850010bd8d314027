package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// SizeSnapshot 规格快照：加入购物车时复制，后续目录变更不回溯影响已有行
type SizeSnapshot struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	PriceAdjustment Money  `json:"price_adjustment"`
}

// SelectedTopping 购物车行内的已选配料（name 已含 Grilled/XTRA- 前缀）
type SelectedTopping struct {
	ToppingID uint   `json:"topping_id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	IsGrilled *bool  `json:"is_grilled,omitempty"`
}

// CartLine 购物车行：一份完整配置（单品+规格+配料+数量+备注）
type CartLine struct {
	CartID              string            `json:"cart_id"` // 行唯一ID（uuid），与 ItemID 无关
	ItemID              uint              `json:"item_id"`
	Name                string            `json:"name"`
	Size                SizeSnapshot      `json:"size"`
	BasePrice           Money             `json:"base_price"`
	Toppings            []SelectedTopping `json:"toppings"`
	Quantity            int               `json:"quantity"`
	CrustType           string            `json:"crust_type,omitempty"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
}

// CartLines 购物车行集合，整体以 JSON 形式入库
type CartLines []CartLine

// Value 实现 driver.Valuer 接口
func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CartLines{})
	}
	return json.Marshal(l)
}

// Scan 实现 sql.Scanner 接口
func (l *CartLines) Scan(value interface{}) error {
	if value == nil {
		*l = CartLines{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

// Cart 购物车表（单会话独占，跨标签页后写覆盖）
type Cart struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	SessionToken    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`                // 会话标识
	Lines           CartLines      `gorm:"type:json" json:"lines"`                                        // 行集合
	DiscountType    string         `gorm:"type:varchar(50)" json:"discount_type,omitempty"`               // 折扣类型（仅文案）
	DiscountPercent Money          `gorm:"type:decimal(10,2);not null;default:0" json:"discount_percent"` // 折扣百分比 [0,100]
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// HasDiscount 判断购物车是否设置了折扣
func (c *Cart) HasDiscount() bool {
	return c != nil && c.DiscountType != ""
}

// FindLine 按行ID查找购物车行
func (c *Cart) FindLine(cartID string) (int, *CartLine) {
	if c == nil {
		return -1, nil
	}
	for i := range c.Lines {
		if c.Lines[i].CartID == cartID {
			return i, &c.Lines[i]
		}
	}
	return -1, nil
}
