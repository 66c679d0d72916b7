package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
)

// ListSupportRequests 返回全部工单，新工单在前。
func (a *API) ListSupportRequests(c *gin.Context) {
	requests, err := a.support.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении обращений")
		return
	}

	views := make([]gin.H, 0, len(requests))
	for _, item := range requests {
		views = append(views, gin.H{
			"id":             item.ID,
			"message":        item.Message,
			"contact_method": item.ContactMethod,
			"status":         item.Status,
			"created_at":     item.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": views})
}

// UpdateSupportRequest 更新工单状态。
func (a *API) UpdateSupportRequest(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	if _, err := a.support.UpdateStatus(id, payload.Status); err != nil {
		if errors.Is(err, service.ErrSupportRequestNotFound) {
			respondError(c, http.StatusNotFound, "Обращение не найдено")
			return
		}
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении статуса обращения")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Статус обращения обновлен"})
}

// DeleteSupportRequest 删除工单。
func (a *API) DeleteSupportRequest(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	if err := a.support.Delete(id); err != nil {
		if errors.Is(err, service.ErrSupportRequestNotFound) {
			respondError(c, http.StatusNotFound, "Обращение не найдено")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при удалении обращения")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Обращение удалено"})
}
