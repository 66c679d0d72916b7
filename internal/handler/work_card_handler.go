package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/db"
	"github.com/marketcms/internal/service"
)

type workCardPayload struct {
	Title *string `json:"title"`
	Icon  *string `json:"icon"`
	Text  *string `json:"text"`
	Link  *string `json:"link"`
	Order *int    `json:"order"`
}

func (p workCardPayload) toInput() service.WorkCardInput {
	return service.WorkCardInput{Title: p.Title, Icon: p.Icon, Text: p.Text, Link: p.Link, Sort: p.Order}
}

func workCardView(card db.WorkCard) gin.H {
	return gin.H{
		"id":    card.ID,
		"title": card.Title,
		"icon":  card.Icon,
		"text":  card.Text,
		"link":  card.Link,
		"order": card.Sort,
	}
}

// ListWorkCards 返回全部工作卡片，按排序字段升序。
func (a *API) ListWorkCards(c *gin.Context) {
	cards, err := a.workCards.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении карточек работы")
		return
	}

	views := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		views = append(views, workCardView(card))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cards": views})
}

// CreateWorkCard 创建工作卡片
func (a *API) CreateWorkCard(c *gin.Context) {
	var payload workCardPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	card, err := a.workCards.Create(payload.toInput())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при создании карточки работы")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Карточка работы успешно создана", "card": workCardView(*card)})
}

// UpdateWorkCard 更新工作卡片
func (a *API) UpdateWorkCard(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var payload workCardPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	card, err := a.workCards.Update(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrWorkCardNotFound) {
			respondError(c, http.StatusNotFound, "Карточка не найдена")
			return
		}
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении карточки работы")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Карточка работы успешно обновлена", "card": workCardView(*card)})
}

// DeleteWorkCard 删除工作卡片
func (a *API) DeleteWorkCard(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	if err := a.workCards.Delete(id); err != nil {
		if errors.Is(err, service.ErrWorkCardNotFound) {
			respondError(c, http.StatusNotFound, "Карточка не найдена")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при удалении карточки работы")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Карточка работы успешно удалена"})
}

// ReorderWorkCards 按提交的 id 顺序重排工作卡片。
func (a *API) ReorderWorkCards(c *gin.Context) {
	var payload struct {
		Order []uint `json:"order"`
	}
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	if err := a.workCards.Reorder(payload.Order); err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при изменении порядка")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Порядок карточек работы обновлен"})
}
