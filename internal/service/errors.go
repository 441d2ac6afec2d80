package service

import (
	"errors"
)

const (
	BadRequest           = 400
	Unauthorized         = 401
	NotFound             = 404
	PayloadTooLarge      = 413
	UnsupportedMediaType = 415
	InternalServerError  = 500
)

var (
	ErrValidation           = errors.New("参数错误")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrAccountNotFound      = errors.New("账号不存在")
	ErrInvalidCredentials   = errors.New("用户名或密码错误")
	ErrTokenInvalid         = errors.New("登录凭证无效")
	ErrTokenExpired         = errors.New("登录凭证已过期")
	ErrUnsupportedMediaType = errors.New("不支持的文件类型")
	ErrPayloadTooLarge      = errors.New("文件过大")
	ErrStorage              = errors.New("存储异常，请稍后重试")
	ErrAccountExists        = errors.New("账号已存在")
	ErrWeakPassword         = errors.New("密码长度至少 8 位")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrValidation:           BadRequest,
	ErrPostNotFound:         NotFound,
	ErrAccountNotFound:      Unauthorized,
	ErrInvalidCredentials:   Unauthorized,
	ErrTokenInvalid:         Unauthorized,
	ErrTokenExpired:         Unauthorized,
	ErrUnsupportedMediaType: UnsupportedMediaType,
	ErrPayloadTooLarge:      PayloadTooLarge,
	ErrStorage:              InternalServerError,
	ErrAccountExists:        BadRequest,
	ErrWeakPassword:         BadRequest,
	UnExpectedError:         InternalServerError,
}

// Lookup 沿错误链查找业务码
func Lookup(err error) (error, int, bool) {
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel, code, true
		}
	}
	return nil, 0, false
}
