package handler

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var richTextPolicy = bluemonday.UGCPolicy()

// renderRichText 将 Markdown 文本渲染为 HTML 并过滤危险标签。
func renderRichText(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return richTextPolicy.Sanitize(buf.String())
}

// GetSiteIcon 公开接口：站点图标路径，未设置时为 null。
func (a *API) GetSiteIcon(c *gin.Context) {
	icon, err := a.site.GetSiteIcon()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"icon_path": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"icon_path": icon.IconPath})
}

// GetLinks 公开接口：链接列表。
func (a *API) GetLinks(c *gin.Context) {
	links, err := a.links.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении ссылок")
		return
	}

	views := make([]gin.H, 0, len(links))
	for _, link := range links {
		views = append(views, linkView(link))
	}
	c.JSON(http.StatusOK, gin.H{"links": views})
}

// GetWorkCards 公开接口：工作卡片列表。
func (a *API) GetWorkCards(c *gin.Context) {
	cards, err := a.workCards.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении карточек")
		return
	}

	views := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		views = append(views, workCardView(card))
	}
	c.JSON(http.StatusOK, gin.H{"cards": views})
}

// GetCalculatorSettings 公开接口：计算器配置，未创建时返回文档化默认值。
func (a *API) GetCalculatorSettings(c *gin.Context) {
	data, err := a.calculator.Get()
	if err != nil {
		if errors.Is(err, service.ErrCalculatorNotFound) {
			c.JSON(http.StatusOK, calculatorView(service.DefaultCalculatorData()))
			return
		}
		respondError(c, http.StatusInternalServerError, "Ошибка при получении настроек калькулятора")
		return
	}
	c.JSON(http.StatusOK, calculatorView(data))
}

// GetIntroButtonLink 公开接口：首屏按钮链接，默认 #about。
func (a *API) GetIntroButtonLink(c *gin.Context) {
	link, err := a.site.GetIntroLink()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"link": "#about"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link.Link})
}

// GetContactUsButtonLink 公开接口：联系按钮链接，默认 #。
func (a *API) GetContactUsButtonLink(c *gin.Context) {
	link, err := a.site.GetContactLink()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"link": "#"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link.Link})
}

// GetIntroBackground 公开接口：首屏背景，默认静态图片。
func (a *API) GetIntroBackground(c *gin.Context) {
	background, err := a.site.GetIntroBackground()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"background_path": "/assets/img/main/intro-bg.png",
			"background_type": "image",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"background_path": background.BackgroundPath,
		"background_type": background.BackgroundType,
	})
}

// GetPage 公开接口：内容页及商品，附带渲染后的 HTML 字段。
func (a *API) GetPage(c *gin.Context) {
	page, err := a.pages.GetPage(c.Param("page_type"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении страницы")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"top_text":         page.TopText,
		"bottom_text":      page.BottomText,
		"top_text_html":    renderRichText(page.TopText),
		"bottom_text_html": renderRichText(page.BottomText),
		"products":         page.Products,
	})
}

// GetPromotions 公开接口：促销页及商品，附带渲染后的 HTML 字段。
func (a *API) GetPromotions(c *gin.Context) {
	page, err := a.promotions.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении страницы акций")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"text":       page.Text,
		"text_html":  renderRichText(page.Text),
		"image_path": page.ImagePath,
		"products":   page.Products,
	})
}

// CreateSupportRequest 公开接口：创建反馈工单。
func (a *API) CreateSupportRequest(c *gin.Context) {
	var payload struct {
		Message       string `json:"message"`
		ContactMethod string `json:"contact_method"`
	}
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	request, err := a.support.Create(payload.Message, payload.ContactMethod)
	if err != nil {
		respondServiceError(c, err, http.StatusInternalServerError, "Ошибка при отправке заявки")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Заявка успешно отправлена. Мы свяжемся с вами в ближайшее время.",
		"id":      request.ID,
	})
}

// ChatBotMessage 公开接口：转发访客消息给聊天机器人。
func (a *API) ChatBotMessage(c *gin.Context) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос"})
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Сообщение не может быть пустым"})
		return
	}

	response, err := a.chat.SendMessage(c.Request.Context(), payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatTokenMissing):
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Токен OpenAI не настроен"})
		case errors.Is(err, service.ErrChatUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Неверный токен OpenAI API"})
		case errors.Is(err, service.ErrChatRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Превышен лимит запросов к OpenAI API"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка OpenAI API"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": response})
}

// Favicon 重定向到站点图标；未设置时回退前端构建产物，再退到 204。
func (a *API) Favicon(c *gin.Context) {
	icon, err := a.site.GetSiteIcon()
	if err == nil && icon.IconPath != "" {
		c.Redirect(http.StatusFound, icon.IconPath)
		return
	}

	fallback := filepath.Join(a.frontendDir, "favicon.ico")
	if _, statErr := os.Stat(fallback); statErr == nil {
		c.File(fallback)
		return
	}
	c.Status(http.StatusNoContent)
}

// ServeSPA 作为 NoRoute 兜底：API 路径返回 404 JSON，其余回退到前端入口页。
func (a *API) ServeSPA(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/admin/api/") {
		respondError(c, http.StatusNotFound, "Не найдено")
		return
	}

	static := filepath.Join(a.frontendDir, filepath.Clean(path))
	if info, err := os.Stat(static); err == nil && !info.IsDir() {
		c.File(static)
		return
	}

	index := filepath.Join(a.frontendDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		c.File(index)
		return
	}
	c.Status(http.StatusNotFound)
}
