package response

import (
	"Chronicle/internal/api/dto"
	"Chronicle/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                   = 200
	BadRequest           = 400
	Unauthorized         = 401
	NotFound             = 404
	PayloadTooLarge      = 413
	UnsupportedMediaType = 415
	InternalServerError  = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Error 处理错误, 未登记的错误只记录日志, 对外统一为系统异常
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, service.ErrValidation.Error())
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		Fail(c, PayloadTooLarge, service.ErrPayloadTooLarge.Error())
		return
	}

	sentinel, code, ok := service.Lookup(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	if code == InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
	}
	Fail(c, code, sentinel.Error())
}

// Redirect 非 GET 请求使用 303, 让浏览器以 GET 跟随
func Redirect(c *gin.Context, location string) {
	status := http.StatusFound
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		status = http.StatusSeeOther
	}
	c.Redirect(status, location)
}

// RouteNotFound 未匹配的路由
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.Response{
		Code:    NotFound,
		Message: "资源不存在",
		Data:    nil,
	})
}

// Recovery panic 统一返回系统异常
func Recovery(c *gin.Context, recovered any) {
	log.ErrorContext(c.Request.Context(), "panic recovered", "err", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Response{
		Code:    InternalServerError,
		Message: service.UnExpectedError.Error(),
		Data:    nil,
	})
}
