package middleware

import (
	"Chronicle/internal/pkg/consts"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/pkg/security"
	"Chronicle/internal/service"
	"context"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// LoginPath 未登录时的跳转地址
const LoginPath = "/admin"

// PageAuthMiddleware 后台页面鉴权, 失败时跳转到登录页
func PageAuthMiddleware(authSvc service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, authSvc, cookieName) {
			response.Redirect(c, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuthMiddleware 后台接口鉴权, 失败时返回未授权
func APIAuthMiddleware(authSvc service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authorize(c, authSvc, cookieName) {
			response.Fail(c, response.Unauthorized, service.ErrTokenInvalid.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

// authorize 校验 Cookie 中的令牌并注入身份, 过期与无效一视同仁
func authorize(c *gin.Context, authSvc service.AuthService, cookieName string) bool {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return false
	}
	claims, err := authSvc.Authorize(c.Request.Context(), token)
	if err != nil {
		log.InfoContext(c.Request.Context(), "admin gate rejected", "path", c.Request.URL.Path, "reason", err.Error())
		return false
	}

	c.Set(consts.ClaimsKey, claims)
	ctx := context.WithValue(c.Request.Context(), consts.ClaimsKey, claims)
	c.Request = c.Request.WithContext(ctx)
	return true
}

// ClaimsFrom 取出已校验的管理员身份
func ClaimsFrom(c *gin.Context) (*security.AdminClaims, bool) {
	v, ok := c.Get(consts.ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.AdminClaims)
	return claims, ok
}
