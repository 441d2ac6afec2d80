package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims 会话令牌携带的管理员身份
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
