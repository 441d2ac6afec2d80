package handler

import (
	"Chronicle/internal/api/config"
	"Chronicle/internal/api/dto"
	"Chronicle/internal/pkg/response"
	"Chronicle/internal/pkg/util"
	"Chronicle/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.AuthConfig
}

func NewAuthHandler(authSvc service.AuthService, cookie config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		cookie:  cookie,
	}
}

// LoginPage 登录入口
func (s *AuthHandler) LoginPage(c *gin.Context) {
	loggedIn := false
	if token, err := c.Cookie(s.cookie.CookieName); err == nil && token != "" {
		_, err = s.authSvc.Authorize(c.Request.Context(), token)
		loggedIn = err == nil
	}
	response.Success(c, &dto.LoginPageDTO{Title: "Admin", LoggedIn: loggedIn})
}

// Login 登录成功后令牌只写入 HttpOnly Cookie
func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrValidation)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, service.ErrValidation)
		return
	}

	token, session, err := s.authSvc.Authenticate(c.Request.Context(), &req)
	if err != nil {
		// 不区分账号不存在与密码错误
		if errors.Is(err, service.ErrAccountNotFound) {
			err = service.ErrInvalidCredentials
		}
		response.Error(c, err)
		return
	}

	s.setCookie(c, token, int(s.authSvc.TokenTTL().Seconds()))
	response.Success(c, session)
}

// Logout 幂等, 无论令牌状态都清除 Cookie
func (s *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(s.cookie.CookieName); err == nil {
		s.authSvc.Logout(c.Request.Context(), token)
	}
	s.setCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

func (s *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.cookie.CookieName, value, maxAge, "/", "", s.cookie.CookieSecure, true)
}
