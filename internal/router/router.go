package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/marketcms/internal/config"
	"github.com/marketcms/internal/db"
	"github.com/marketcms/internal/handler"
)

const sessionMaxAge = 12 * 60 * 60

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) (*gin.Engine, error) {
	r := gin.Default()

	// 配置会话中间件，有效期 12 小时
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("marketcms_session", store))

	// 测试环境可能没有模板目录
	if matches, _ := filepath.Glob(cfg.TemplateGlob); len(matches) > 0 {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}

	api, err := handler.NewAPI(db.DB, cfg.UploadDir, cfg.FrontendDir, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	// 上传文件静态服务
	r.Static("/uploads", cfg.UploadDir)
	r.GET("/favicon.ico", api.Favicon)

	// 公开 API
	public := r.Group("/api")
	{
		public.GET("/get_site_icon", api.GetSiteIcon)
		public.GET("/get_links", api.GetLinks)
		public.GET("/get_work_cards", api.GetWorkCards)
		public.GET("/get_calculator_settings", api.GetCalculatorSettings)
		public.GET("/get_intro_button_link", api.GetIntroButtonLink)
		public.GET("/get_contact_us_button_link", api.GetContactUsButtonLink)
		public.GET("/get_intro_background", api.GetIntroBackground)
		public.GET("/pages/:page_type", api.GetPage)
		public.GET("/promotions", api.GetPromotions)
		public.POST("/support-requests", api.CreateSupportRequest)
		public.POST("/chatbot/message", api.ChatBotMessage)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("", api.AdminRedirect)
		admin.GET("/", api.AdminRedirect)
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/panel", api.ShowAdminPanel)

			// API路由
			adminAPI := auth.Group("/api")
			{
				adminAPI.GET("/site-icon", api.GetSiteIconAdmin)
				adminAPI.PUT("/site-icon", api.UpdateSiteIcon)
				adminAPI.GET("/intro-button-link", api.GetIntroLinkAdmin)
				adminAPI.PUT("/intro-button-link", api.UpdateIntroLink)
				adminAPI.GET("/contact-us-button-link", api.GetContactLinkAdmin)
				adminAPI.PUT("/contact-us-button-link", api.UpdateContactLink)
				adminAPI.GET("/intro-background", api.GetIntroBackgroundAdmin)

				adminAPI.GET("/links", api.ListLinks)
				adminAPI.POST("/links", api.CreateLink)
				adminAPI.PUT("/links/reorder", api.ReorderLinks)
				adminAPI.PUT("/links/:id", api.UpdateLink)
				adminAPI.DELETE("/links/:id", api.DeleteLink)

				adminAPI.GET("/work-cards", api.ListWorkCards)
				adminAPI.POST("/work-cards", api.CreateWorkCard)
				adminAPI.PUT("/work-cards/reorder", api.ReorderWorkCards)
				adminAPI.PUT("/work-cards/:id", api.UpdateWorkCard)
				adminAPI.DELETE("/work-cards/:id", api.DeleteWorkCard)

				adminAPI.GET("/calculator-settings", api.GetCalculatorSettingsAdmin)
				adminAPI.PUT("/calculator-settings", api.UpdateCalculatorSettings)

				adminAPI.GET("/settings", api.GetSettings)
				adminAPI.PUT("/settings", api.UpdateSettings)
				adminAPI.GET("/umami/stats", api.UmamiStats)
				adminAPI.GET("/umami/metrics", api.UmamiMetrics)

				adminAPI.GET("/support-requests", api.ListSupportRequests)
				adminAPI.PUT("/support-requests/:id", api.UpdateSupportRequest)
				adminAPI.DELETE("/support-requests/:id", api.DeleteSupportRequest)

				adminAPI.GET("/pages/:page_type", api.GetPageAdmin)
				adminAPI.PUT("/pages/:page_type", api.UpdatePageAdmin)
				adminAPI.POST("/pages/:page_type/products", api.AddPageProduct)
				adminAPI.PUT("/pages/:page_type/products/:id", api.UpdatePageProduct)
				adminAPI.DELETE("/pages/:page_type/products/:id", api.DeletePageProduct)

				adminAPI.GET("/promotions", api.GetPromotionsAdmin)
				adminAPI.PUT("/promotions", api.UpdatePromotionsAdmin)
				adminAPI.POST("/promotions/products", api.AddPromotionProduct)
				adminAPI.PUT("/promotions/products/:id", api.UpdatePromotionProduct)
				adminAPI.DELETE("/promotions/products/:id", api.DeletePromotionProduct)

				adminAPI.POST("/upload-icon", api.UploadIcon)
				adminAPI.POST("/upload-site-icon", api.UploadSiteIcon)
				adminAPI.POST("/upload-intro-background", api.UploadIntroBackground)
				adminAPI.POST("/upload-work-icon", api.UploadWorkIcon)
				adminAPI.POST("/upload-product-image", api.UploadProductImage)
				adminAPI.POST("/upload-promotions-image", api.UploadPromotionsImage)
			}
		}
	}

	// 前端 SPA 兜底
	r.NoRoute(api.ServeSPA)

	return r, nil
}
