package public

import (
	"github.com/phillyslice/phillyslice/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取菜单分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.Categories(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// GetItems 获取上架单品列表（可按分类 slug 过滤）
func (h *Handler) GetItems(c *gin.Context) {
	items, err := h.CatalogService.Items(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// GetItemBySlug 获取单品详情（含可选配料与默认标签）
func (h *Handler) GetItemBySlug(c *gin.Context) {
	detail, err := h.CatalogService.ItemDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, detail)
}
