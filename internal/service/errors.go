package service

import "errors"

// 服务层业务错误
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrItemNotAvailable    = errors.New("item not available")
	ErrSizeNotFound        = errors.New("size not found")
	ErrToppingNotFound     = errors.New("topping not found")
	ErrToppingNotAvailable = errors.New("topping not available")
	ErrToppingTypeMismatch = errors.New("topping does not fit item type")
	ErrVariantNotSupported = errors.New("topping does not support grilled variant")
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrDiscountInvalid     = errors.New("discount invalid")
)
