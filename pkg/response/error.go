package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalMsg = "Erro interno do servidor"

type BizError struct {
	Code int
	Msg  string
	Err  error
}

func (e *BizError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.Err
}

// Is 同一 Code + Msg 视为同一类错误，便于 errors.Is 匹配哨兵错误
func (e *BizError) Is(target error) bool {
	var t *BizError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Msg == t.Msg
}

// WithErr 复制错误并附带底层原因
func (e *BizError) WithErr(err error) *BizError {
	return &BizError{Code: e.Code, Msg: e.Msg, Err: err}
}

// Detail 返回底层错误信息，只在 5xx 时暴露给客户端
func (e *BizError) Detail() string {
	if e.Err == nil || e.Code < http.StatusInternalServerError {
		return ""
	}
	return e.Err.Error()
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Fail 非业务错误统一包装为 500，msg 为对外的通用提示
func Fail(err error, msg string) error {
	if err == nil {
		return nil
	}
	var be *BizError
	if errors.As(err, &be) {
		return err
	}
	return &BizError{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

func Write(c *gin.Context, err error) {
	var be *BizError
	if !errors.As(err, &be) {
		be = &BizError{Code: http.StatusInternalServerError, Msg: internalMsg, Err: err}
	}
	c.JSON(be.Code, Response{
		Success: false,
		Message: be.Msg,
		Error:   be.Detail(),
	})
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(http.StatusInternalServerError, Response{
					Success: false,
					Message: internalMsg,
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			Write(c, c.Errors.Last().Err)
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Success: false,
		Message: msg,
	})
}
