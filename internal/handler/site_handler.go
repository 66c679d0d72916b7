package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
)

type linkValuePayload struct {
	Link string `json:"link"`
}

// GetSiteIconAdmin 返回站点图标，未设置时 icon_path 为 null。
func (a *API) GetSiteIconAdmin(c *gin.Context) {
	icon, err := a.site.GetSiteIcon()
	if err != nil {
		if errors.Is(err, service.ErrSiteIconNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": true, "icon_path": nil})
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении иконки сайта")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "icon_path": icon.IconPath})
}

// UpdateSiteIcon 设置站点图标路径。
func (a *API) UpdateSiteIcon(c *gin.Context) {
	var payload struct {
		IconPath string `json:"icon_path"`
	}
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	icon, err := a.site.UpdateSiteIcon(payload.IconPath)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении иконки сайта")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Иконка сайта успешно обновлена", "icon_path": icon.IconPath})
}

// GetIntroLinkAdmin 返回首屏按钮链接，未设置时 404。
func (a *API) GetIntroLinkAdmin(c *gin.Context) {
	link, err := a.site.GetIntroLink()
	if err != nil {
		if errors.Is(err, service.ErrIntroLinkNotFound) {
			respondError(c, http.StatusNotFound, "Ссылка кнопки 'Подробнее' не найдена")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении ссылки")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "link": link.Link})
}

// UpdateIntroLink 更新首屏按钮链接。
func (a *API) UpdateIntroLink(c *gin.Context) {
	var payload linkValuePayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	link, err := a.site.UpdateIntroLink(payload.Link)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении ссылки кнопки 'Подробнее'")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ссылка кнопки 'Подробнее' успешно обновлена", "link": link.Link})
}

// GetContactLinkAdmin 返回联系按钮链接，未设置时 404。
func (a *API) GetContactLinkAdmin(c *gin.Context) {
	link, err := a.site.GetContactLink()
	if err != nil {
		if errors.Is(err, service.ErrContactLinkNotFound) {
			respondError(c, http.StatusNotFound, "Ссылка кнопки 'Вступить в команду' не найдена")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении ссылки")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "link": link.Link})
}

// UpdateContactLink 更新联系按钮链接。
func (a *API) UpdateContactLink(c *gin.Context) {
	var payload linkValuePayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	link, err := a.site.UpdateContactLink(payload.Link)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении ссылки кнопки 'Вступить в команду'")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ссылка кнопки 'Вступить в команду' успешно обновлена", "link": link.Link})
}

// GetIntroBackgroundAdmin 返回首屏背景，未设置时 404。
func (a *API) GetIntroBackgroundAdmin(c *gin.Context) {
	background, err := a.site.GetIntroBackground()
	if err != nil {
		if errors.Is(err, service.ErrIntroBackgroundNotFound) {
			respondError(c, http.StatusNotFound, "Фон первой секции не найден")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении фона")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"background_path": background.BackgroundPath,
		"background_type": background.BackgroundType,
	})
}
