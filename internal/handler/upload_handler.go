package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	imageExtensions   = []string{"png", "jpg", "jpeg", "gif", "svg", "webp"}
	iconExtensions    = []string{"png", "jpg", "jpeg", "gif", "svg", "webp", "ico"}
	productExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}
	videoExtensions   = []string{"mp4", "webm", "ogg", "mov"}
)

const maxProductImageSize = 15 << 20

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// UploadIcon 上传链接图标到 icons 目录。
func (a *API) UploadIcon(c *gin.Context) {
	a.saveIconUpload(c, "", "icons", "Иконка успешно загружена", "Ошибка при загрузке иконки", nil)
}

// UploadWorkIcon 上传工作卡片图标到 icons 目录。
func (a *API) UploadWorkIcon(c *gin.Context) {
	a.saveIconUpload(c, "work-icon_", "icons", "Иконка успешно загружена", "Ошибка при загрузке иконки", nil)
}

// UploadSiteIcon 上传站点图标并同步更新单例记录。
func (a *API) UploadSiteIcon(c *gin.Context) {
	a.saveIconUpload(c, "site-icon_", "site", "Иконка сайта успешно загружена", "Ошибка при загрузке иконки сайта", func(iconPath string) error {
		_, err := a.site.UpdateSiteIcon(iconPath)
		return err
	})
}

// UploadIntroBackground 上传首屏背景，按扩展名分流到 main/video 目录并更新单例。
func (a *API) UploadIntroBackground(c *gin.Context) {
	file, ext, ok := a.requireUploadFile(c)
	if !ok {
		return
	}

	isVideo := containsExtension(videoExtensions, ext)
	if !isVideo && !containsExtension(imageExtensions, ext) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"Недопустимое расширение файла. Разрешены изображения: %s, видео: %s",
			strings.Join(imageExtensions, ", "), strings.Join(videoExtensions, ", ")))
		return
	}

	backgroundType := "image"
	category := "main"
	if isVideo {
		backgroundType = "video"
		category = "video"
	}

	backgroundPath, err := a.storeUpload(c, file, "intro-bg_", category, ext)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при загрузке фона первой секции")
		return
	}

	if _, err := a.site.SetIntroBackground(backgroundPath, backgroundType); err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка при загрузке фона первой секции")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Фон первой секции успешно загружен",
		"background_path": backgroundPath,
		"background_type": backgroundType,
	})
}

// UploadProductImage 上传商品图片，限制 15 МБ。
func (a *API) UploadProductImage(c *gin.Context) {
	a.saveImageUpload(c, "product_", "products", productExtensions, maxProductImageSize,
		"Ошибка при загрузке изображения товара")
}

// UploadPromotionsImage 上传促销页图片，限制 15 МБ。
func (a *API) UploadPromotionsImage(c *gin.Context) {
	a.saveImageUpload(c, "promo_", "promotions", imageExtensions, maxProductImageSize,
		"Ошибка при загрузке изображения")
}

func (a *API) saveIconUpload(c *gin.Context, prefix, category, okMessage, failMessage string, after func(string) error) {
	file, ext, ok := a.requireUploadFile(c)
	if !ok {
		return
	}
	if !containsExtension(iconExtensions, ext) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"Недопустимое расширение файла. Разрешены: %s", strings.Join(iconExtensions, ", ")))
		return
	}

	iconPath, err := a.storeUpload(c, file, prefix, category, ext)
	if err != nil {
		respondError(c, http.StatusInternalServerError, failMessage)
		return
	}

	if after != nil {
		if err := after(iconPath); err != nil {
			respondError(c, http.StatusInternalServerError, failMessage)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": okMessage, "icon_path": iconPath})
}

func (a *API) saveImageUpload(c *gin.Context, prefix, category string, allowed []string, maxSize int64, failMessage string) {
	file, ext, ok := a.requireUploadFile(c)
	if !ok {
		return
	}
	if !containsExtension(allowed, ext) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"Недопустимое расширение файла. Разрешены: %s", strings.Join(allowed, ", ")))
		return
	}
	if file.Size > maxSize {
		respondError(c, http.StatusBadRequest, "Размер файла не должен превышать 15 МБ")
		return
	}

	imagePath, err := a.storeUpload(c, file, prefix, category, ext)
	if err != nil {
		respondError(c, http.StatusInternalServerError, failMessage)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image_path": imagePath})
}

func (a *API) requireUploadFile(c *gin.Context) (*multipart.FileHeader, string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Файл не найден")
		return nil, "", false
	}
	if file.Filename == "" {
		respondError(c, http.StatusBadRequest, "Файл не выбран")
		return nil, "", false
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	return file, ext, true
}

// storeUpload 以时间戳加随机片段生成唯一文件名保存文件，返回 /uploads 下的访问路径。
func (a *API) storeUpload(c *gin.Context, file *multipart.FileHeader, prefix, category, ext string) (string, error) {
	dir := filepath.Join(a.uploadDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	timestamp := time.Now().Format("20060102_150405")
	fragment := uuid.New().String()[:8]
	name := fmt.Sprintf("%s%s_%s_%s.%s", prefix, base, timestamp, fragment, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save uploaded file: %w", err)
	}

	return "/uploads/" + category + "/" + name, nil
}

func sanitizeFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(name, "_")
	cleaned = strings.Trim(cleaned, "._-")
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned
}

func containsExtension(allowed []string, ext string) bool {
	for _, candidate := range allowed {
		if candidate == ext {
			return true
		}
	}
	return false
}
