package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError 将服务层错误映射为响应：校验错误返回 400 与具体提示，
// 其余按调用方给定的兜底状态与文案返回。
func respondServiceError(c *gin.Context, err error, fallbackStatus int, fallbackMessage string) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		respondError(c, http.StatusBadRequest, validation.Message)
		return
	}
	respondError(c, fallbackStatus, fallbackMessage)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}
