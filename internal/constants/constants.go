package constants

// 菜单品类常量
const (
	ItemTypePizza       = "pizza"
	ItemTypeCheesesteak = "cheesesteak"
	ItemTypeBoth        = "both"
)

// 配料分类常量
const (
	ToppingCategoryCheese = "cheese"
	ToppingCategoryMeat   = "meat"
	ToppingCategoryVeggie = "veggie"
)

// 蔬菜配料做法常量
const (
	VeggieStateNatural = "natural"
	VeggieStateGrilled = "grilled"
	VeggieStateBoth    = "both"
)

// 饼底类型常量
const (
	CrustTypeThin    = "thin"
	CrustTypeRegular = "regular"
	CrustTypeThick   = "thick"
)

// 折扣类型常量（仅用于展示文案，不参与计算）
const (
	DiscountTypePromo    = "promo"
	DiscountTypeLoyalty  = "loyalty"
	DiscountTypeEmployee = "employee"
)

// 队列与任务常量
const (
	QueueDefault       = "default"
	TaskCheckoutSubmit = "checkout:submit"
)

// 配料标签前缀常量
const (
	LabelPrefixExtra   = "XTRA-"
	LabelPrefixGrilled = "Grilled "
)
