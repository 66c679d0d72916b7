package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	UploadDir     string
	FrontendDir   string
	TemplateGlob  string
	AdminPassword string
	SecureCookies bool
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若工作目录存在 .env 文件，会先加载其中的变量。
func Load() AppConfig {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "data/app.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if sessionSecret == "" {
		sessionSecret = "dev-secret-key-change-in-production"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}

	frontendDir := strings.TrimSpace(os.Getenv("FRONTEND_DIR"))
	if frontendDir == "" {
		frontendDir = "frontend/dist"
	}

	templateGlob := strings.TrimSpace(os.Getenv("TEMPLATE_GLOB"))
	if templateGlob == "" {
		templateGlob = "web/template/admin/*.html"
	}

	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	secureCookies := strings.TrimSpace(os.Getenv("SESSION_COOKIE_SECURE")) == "True"

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		SessionSecret: sessionSecret,
		GinMode:       ginMode,
		UploadDir:     uploadDir,
		FrontendDir:   frontendDir,
		TemplateGlob:  templateGlob,
		AdminPassword: adminPassword,
		SecureCookies: secureCookies,
	}
}
