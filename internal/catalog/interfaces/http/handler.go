// Package http 提供肥料商品目录的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agrigrow/storefront/internal/catalog/application"
	"github.com/agrigrow/storefront/internal/catalog/domain"
	"github.com/agrigrow/storefront/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	app *application.CatalogApplicationService
}

// NewCatalogHandler 创建商品目录 HTTP 处理器实例
func NewCatalogHandler(app *application.CatalogApplicationService) *CatalogHandler {
	return &CatalogHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/fertilizers")
	{
		api.GET("", h.ListFertilizers)
		api.GET("/search", h.SearchFertilizers)
		api.GET("/:id", h.GetFertilizer)
		api.POST("", h.CreateFertilizer)
		api.PUT("/:id", h.UpdateFertilizer)
	}
}

type fertilizerView struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              string   `json:"price"`
	DiscountPercentage float64  `json:"discount_percentage,omitempty"`
	Category           string   `json:"category"`
	Season             string   `json:"season,omitempty"`
	SuitableCrops      []string `json:"suitable_crops,omitempty"`
	Stock              int      `json:"stock"`
	InStock            bool     `json:"in_stock"`
	ImageURL           string   `json:"image_url,omitempty"`
}

func toFertilizerView(f *domain.Fertilizer) fertilizerView {
	return fertilizerView{
		ID:                 f.ID,
		Name:               f.Name,
		Description:        f.Description,
		Price:              f.Price.StringFixed(2),
		DiscountPercentage: f.DiscountPercentage,
		Category:           f.Category,
		Season:             f.Season,
		SuitableCrops:      f.SuitableCrops,
		Stock:              f.Stock,
		InStock:            f.InStock(),
		ImageURL:           f.ImageURL,
	}
}

func toFertilizerViews(fertilizers []*domain.Fertilizer) []fertilizerView {
	views := make([]fertilizerView, 0, len(fertilizers))
	for _, f := range fertilizers {
		views = append(views, toFertilizerView(f))
	}
	return views
}

func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}

// ListFertilizers 按类目与季节分页列出商品
func (h *CatalogHandler) ListFertilizers(c *gin.Context) {
	page, size := pagination(c)
	fertilizers, total, err := h.app.ListFertilizers(c.Request.Context(),
		c.Query("category"), c.Query("season"), page, size)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"items": toFertilizerViews(fertilizers),
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// SearchFertilizers 按关键字搜索商品
func (h *CatalogHandler) SearchFertilizers(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing query parameter q")
		return
	}

	page, size := pagination(c)
	fertilizers, total, err := h.app.SearchFertilizers(c.Request.Context(), keyword, page, size)
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"items": toFertilizerViews(fertilizers),
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// GetFertilizer 获取单个商品
func (h *CatalogHandler) GetFertilizer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid fertilizer id")
		return
	}

	fertilizer, err := h.app.GetFertilizer(c.Request.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "fertilizer not found")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, toFertilizerView(fertilizer))
}

// FertilizerRequest 创建/更新商品请求
type FertilizerRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Price              string   `json:"price" binding:"required"`
	DiscountPercentage float64  `json:"discount_percentage"`
	Category           string   `json:"category" binding:"required"`
	Season             string   `json:"season"`
	SuitableCrops      []string `json:"suitable_crops"`
	Stock              int      `json:"stock"`
	ImageURL           string   `json:"image_url"`
}

// CreateFertilizer 创建商品
func (h *CatalogHandler) CreateFertilizer(c *gin.Context) {
	var req FertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid price")
		return
	}

	id, err := h.app.CreateFertilizer(c.Request.Context(), application.CreateFertilizerCommand{
		Name:               req.Name,
		Description:        req.Description,
		Price:              price,
		DiscountPercentage: req.DiscountPercentage,
		Category:           req.Category,
		Season:             req.Season,
		SuitableCrops:      req.SuitableCrops,
		Stock:              req.Stock,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"id": id})
}

// UpdateFertilizer 更新商品
func (h *CatalogHandler) UpdateFertilizer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid fertilizer id")
		return
	}

	var req FertilizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid price")
		return
	}

	err = h.app.UpdateFertilizer(c.Request.Context(), application.UpdateFertilizerCommand{
		ID:                 uint(id),
		Name:               req.Name,
		Description:        req.Description,
		Price:              price,
		DiscountPercentage: req.DiscountPercentage,
		Category:           req.Category,
		Season:             req.Season,
		SuitableCrops:      req.SuitableCrops,
		Stock:              req.Stock,
		ImageURL:           req.ImageURL,
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, "fertilizer not found")
		return
	}
	if err != nil {
		response.Error(c, err.Error())
		return
	}
	response.Success(c, gin.H{"updated": true})
}
