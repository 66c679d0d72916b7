package handler

import (
	"github.com/marketcms/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// API 汇集各 HTTP 处理器共享的服务依赖。
type API struct {
	db           *gorm.DB
	site         *service.SiteService
	links        *service.LinkService
	workCards    *service.WorkCardService
	calculator   *service.CalculatorService
	settings     *service.SettingsService
	support      *service.SupportService
	pages        *service.PageService
	promotions   *service.PromotionsService
	chat         *service.ChatService
	umami        *service.UmamiService
	uploadDir    string
	frontendDir  string
	passwordHash []byte
}

// NewAPI 构造处理器集合，管理员密码以 bcrypt 形式保存在内存中。
func NewAPI(db *gorm.DB, uploadDir, frontendDir, adminPassword string) (*API, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &API{
		db:           db,
		site:         service.NewSiteService(db),
		links:        service.NewLinkService(db),
		workCards:    service.NewWorkCardService(db),
		calculator:   service.NewCalculatorService(db),
		settings:     service.NewSettingsService(db),
		support:      service.NewSupportService(db),
		pages:        service.NewPageService(db),
		promotions:   service.NewPromotionsService(db),
		chat:         service.NewChatService(db),
		umami:        service.NewUmamiService(db),
		uploadDir:    uploadDir,
		frontendDir:  frontendDir,
		passwordHash: hash,
	}, nil
}

// DB 暴露底层 gorm 实例。
func (a *API) DB() *gorm.DB {
	return a.db
}

// Chat 返回聊天服务，测试中用于注入桩客户端。
func (a *API) Chat() *service.ChatService {
	return a.chat
}

// Umami 返回统计代理服务，测试中用于注入桩客户端。
func (a *API) Umami() *service.UmamiService {
	return a.umami
}
