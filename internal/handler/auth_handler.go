package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionAdminKey = "admin_logged_in"

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"title": "Вход в админ-панель",
	})
}

// Login 校验管理员口令并建立会话。
func (a *API) Login(c *gin.Context) {
	password := c.PostForm("password")

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Printf("failed admin login attempt from %s", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"title": "Вход в админ-панель",
			"error": "Неверный пароль",
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAdminKey, true)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
			"title": "Вход в админ-панель",
			"error": "Не удалось сохранить сессию",
		})
		return
	}

	log.Printf("admin login from %s", c.ClientIP())
	c.Redirect(http.StatusFound, "/admin/panel")
}

// Logout 清除会话并跳回登录页。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// AdminRedirect 将 /admin 跳转到面板，由 AuthRequired 决定是否先登录。
func (a *API) AdminRedirect(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/panel")
}

// ShowAdminPanel 渲染后台面板，禁用缓存避免登出后回退可见。
func (a *API) ShowAdminPanel(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.HTML(http.StatusOK, "admin_panel.html", gin.H{
		"title": "Админ-панель",
	})
}

// AuthRequired 会话认证中间件。API 路径返回 401 JSON，页面路径重定向到登录页。
// 每次通过认证都重新保存会话，使 12 小时有效期按最近访问滑动。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		loggedIn, _ := session.Get(sessionAdminKey).(bool)
		if !loggedIn {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				respondError(c, http.StatusUnauthorized, "Требуется авторизация")
			} else {
				c.Redirect(http.StatusFound, "/admin/login")
			}
			c.Abort()
			return
		}
		session.Set(sessionAdminKey, true)
		session.Save()
		c.Next()
	}
}
