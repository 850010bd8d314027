package public

import (
	"errors"

	"github.com/phillyslice/phillyslice/internal/http/response"
	"github.com/phillyslice/phillyslice/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var configurationErrorRules = []mappedHandlerError{
	{target: service.ErrItemNotFound, code: response.CodeNotFound, msg: "item not found"},
	{target: service.ErrItemNotAvailable, code: response.CodeBadRequest, msg: "item not available"},
	{target: service.ErrSizeNotFound, code: response.CodeBadRequest, msg: "size not found"},
	{target: service.ErrToppingNotFound, code: response.CodeBadRequest, msg: "topping not found"},
	{target: service.ErrToppingNotAvailable, code: response.CodeBadRequest, msg: "topping not available"},
	{target: service.ErrToppingTypeMismatch, code: response.CodeBadRequest, msg: "topping does not fit this item"},
	{target: service.ErrVariantNotSupported, code: response.CodeBadRequest, msg: "topping does not support grilled variant"},
}

var cartErrorRules = append([]mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
	{target: service.ErrDiscountInvalid, code: response.CodeBadRequest, msg: "discount invalid"},
}, configurationErrorRules...)

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, configurationErrorRules, response.CodeInternal, "catalog fetch failed")
}

func respondQuoteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, configurationErrorRules, response.CodeInternal, "quote failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}
