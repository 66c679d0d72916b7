package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/db"
	"github.com/marketcms/internal/service"
)

type linkPayload struct {
	Text  *string `json:"text"`
	URL   *string `json:"url"`
	Icon  *string `json:"icon"`
	Order *int    `json:"order"`
}

func (p linkPayload) toInput() service.LinkInput {
	return service.LinkInput{Text: p.Text, URL: p.URL, Icon: p.Icon, Sort: p.Order}
}

func linkView(link db.Link) gin.H {
	return gin.H{
		"id":    link.ID,
		"text":  link.Text,
		"url":   link.URL,
		"icon":  link.Icon,
		"order": link.Sort,
	}
}

// ListLinks 返回全部链接，按排序字段升序。
func (a *API) ListLinks(c *gin.Context) {
	links, err := a.links.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении ссылок")
		return
	}

	views := make([]gin.H, 0, len(links))
	for _, link := range links {
		views = append(views, linkView(link))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "links": views})
}

// CreateLink 创建链接
func (a *API) CreateLink(c *gin.Context) {
	var payload linkPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	link, err := a.links.Create(payload.toInput())
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при создании ссылки")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ссылка успешно создана", "link": linkView(*link)})
}

// UpdateLink 更新链接
func (a *API) UpdateLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	var payload linkPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	link, err := a.links.Update(id, payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			respondError(c, http.StatusNotFound, "Ссылка не найдена")
			return
		}
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при обновлении ссылки")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ссылка успешно обновлена", "link": linkView(*link)})
}

// DeleteLink 删除链接
func (a *API) DeleteLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректный идентификатор")
		return
	}

	if err := a.links.Delete(id); err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			respondError(c, http.StatusNotFound, "Ссылка не найдена")
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при удалении ссылки")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ссылка успешно удалена"})
}

// ReorderLinks 按提交的 id 顺序重排链接。
func (a *API) ReorderLinks(c *gin.Context) {
	var payload struct {
		Order []uint `json:"order"`
	}
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	if err := a.links.Reorder(payload.Order); err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при изменении порядка")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Порядок ссылок обновлен"})
}
