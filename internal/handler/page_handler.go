package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/db"
	"github.com/marketcms/internal/service"
)

type productPayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImagePath   string           `json:"image_path"`
	Prices      []db.PriceOption `json:"prices"`
	Price       json.RawMessage  `json:"price"`
}

func (p productPayload) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		Prices:      p.Prices,
	}
	if legacy := rawToString(p.Price); legacy != "" {
		input.LegacyPrice = &legacy
	}
	return input
}

// rawToString 兼容历史客户端把价格作为字符串或数字提交的两种形态。
func rawToString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	return trimmed
}

type pagePayload struct {
	TopText    *string           `json:"top_text"`
	BottomText *string           `json:"bottom_text"`
	Products   *[]productPayload `json:"products"`
}

func productInputs(payloads []productPayload) []service.ProductInput {
	inputs := make([]service.ProductInput, 0, len(payloads))
	for _, payload := range payloads {
		inputs = append(inputs, payload.toInput())
	}
	return inputs
}

// GetPageAdmin 返回页面及商品列表，不存在时返回空页面。
func (a *API) GetPageAdmin(c *gin.Context) {
	page, err := a.pages.GetPage(c.Param("page_type"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении страницы")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"top_text":    page.TopText,
		"bottom_text": page.BottomText,
		"products":    page.Products,
	})
}

// UpdatePageAdmin 更新页面文本，products 给定时整体替换。
func (a *API) UpdatePageAdmin(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	input := service.PageInput{TopText: payload.TopText, BottomText: payload.BottomText}
	if payload.Products != nil {
		inputs := productInputs(*payload.Products)
		input.Products = &inputs
	}

	if _, err := a.pages.UpdatePage(c.Param("page_type"), input); err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении страницы")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Страница успешно обновлена"})
}

// AddPageProduct 向页面追加商品。
func (a *API) AddPageProduct(c *gin.Context) {
	var payload productPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	product, err := a.pages.AddProduct(c.Param("page_type"), payload.toInput())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при добавлении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар добавлен", "product": product})
}

// UpdatePageProduct 按行 ID 更新页面商品。
func (a *API) UpdatePageProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var payload productPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	product, err := a.pages.UpdateProduct(c.Param("page_type"), id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Страница не найдена")
			return
		}
		if errors.Is(err, service.ErrPageProductNotFound) {
			respondError(c, http.StatusNotFound, "Товар не найден")
			return
		}
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар обновлен", "product": product})
}

// DeletePageProduct 按行 ID 删除页面商品。
func (a *API) DeletePageProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	if err := a.pages.DeleteProduct(c.Param("page_type"), id); err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "Страница не найдена")
			return
		}
		if errors.Is(err, service.ErrPageProductNotFound) {
			respondError(c, http.StatusNotFound, "Товар не найден")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при удалении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар удален"})
}

type promotionsPayload struct {
	Text      *string           `json:"text"`
	ImagePath *string           `json:"image_path"`
	Products  *[]productPayload `json:"products"`
}

// GetPromotionsAdmin 返回促销页及商品列表。
func (a *API) GetPromotionsAdmin(c *gin.Context) {
	page, err := a.promotions.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении страницы акций")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"text":       page.Text,
		"image_path": page.ImagePath,
		"products":   page.Products,
	})
}

// UpdatePromotionsAdmin 更新促销页，text 缺省时写入空串。
func (a *API) UpdatePromotionsAdmin(c *gin.Context) {
	var payload promotionsPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	input := service.PromotionsInput{ImagePath: payload.ImagePath}
	if payload.Text != nil {
		input.Text = *payload.Text
	}
	if payload.Products != nil {
		inputs := productInputs(*payload.Products)
		input.Products = &inputs
	}

	if _, err := a.promotions.Update(input); err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении страницы акций")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Страница акций успешно обновлена"})
}

// AddPromotionProduct 向促销页追加商品。
func (a *API) AddPromotionProduct(c *gin.Context) {
	var payload productPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	product, err := a.promotions.AddProduct(payload.toInput())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при добавлении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар добавлен в прайс", "product": product})
}

// UpdatePromotionProduct 按行 ID 更新促销商品。
func (a *API) UpdatePromotionProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var payload productPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	product, err := a.promotions.UpdateProduct(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrPromotionProductNotFound) {
			respondError(c, http.StatusNotFound, "Товар не найден")
			return
		}
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар обновлен", "product": product})
}

// DeletePromotionProduct 按行 ID 删除促销商品。
func (a *API) DeletePromotionProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	if err := a.promotions.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrPromotionProductNotFound) {
			respondError(c, http.StatusNotFound, "Товар не найден")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при удалении товара")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Товар удален из прайса"})
}
