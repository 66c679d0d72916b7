package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
)

type settingsPayload struct {
	ChatBot *struct {
		OpenAIToken *string `json:"openai_token"`
		Preset      *string `json:"preset"`
	} `json:"chatbot"`
	Umami *struct {
		APIKey    *string `json:"api_key"`
		WebsiteID *string `json:"website_id"`
	} `json:"umami"`
}

// GetSettings 返回聊天机器人配置。
func (a *API) GetSettings(c *gin.Context) {
	chatbot, err := a.settings.GetChatBot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при получении настроек")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chatbot": gin.H{
			"openai_token": chatbot.Token,
			"preset":       chatbot.Preset,
		},
	})
}

// UpdateSettings 更新聊天机器人与 Umami 的子配置，缺省的子对象保持不变。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if !bindJSON(c, &payload, "Некорректный запрос") {
		return
	}

	if payload.ChatBot != nil {
		input := service.ChatBotInput{Token: payload.ChatBot.OpenAIToken, Preset: payload.ChatBot.Preset}
		if _, err := a.settings.UpdateChatBot(input); err != nil {
			respondError(c, http.StatusInternalServerError, "Ошибка при обновлении настроек")
			return
		}
	}

	if payload.Umami != nil {
		input := service.UmamiInput{APIKey: payload.Umami.APIKey, WebsiteID: payload.Umami.WebsiteID}
		if _, err := a.settings.UpdateUmami(input); err != nil {
			respondError(c, http.StatusInternalServerError, "Ошибка при обновлении настроек")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Настройки успешно обновлены"})
}

// UmamiStats 代理 Umami 的 stats 接口。
func (a *API) UmamiStats(c *gin.Context) {
	raw, err := a.umami.Stats(c.Request.Context(), c.Query("startAt"), c.Query("endAt"))
	if err != nil {
		respondUmamiError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// UmamiMetrics 代理 Umami 的 metrics 接口。
func (a *API) UmamiMetrics(c *gin.Context) {
	raw, err := a.umami.Metrics(c.Request.Context(), c.Query("startAt"), c.Query("endAt"), c.Query("type"), c.Query("limit"))
	if err != nil {
		respondUmamiError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func respondUmamiError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUmamiKeyMissing):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Umami API key not configured"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validation.Message})
	case errors.Is(err, service.ErrUmamiUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
