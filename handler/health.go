package handler

import (
	"Forum/pkg/context"
	"Forum/pkg/response"
	ctx "context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var errUnavailable = response.NewError(http.StatusServiceUnavailable, "Serviço indisponível")

type Health struct {
	Db    *gorm.DB
	Redis *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/healthz", context.Wrap(h.Check))
}

// Check 数据库必须可用；redis 未配置时显示 disabled
func (h *Health) Check(c *gin.Context) error {
	timeout, cancel := ctx.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.Db.DB()
	if err == nil {
		err = sqlDB.PingContext(timeout)
	}
	if err != nil {
		return errUnavailable.WithErr(err)
	}

	status := gin.H{"database": "ok", "redis": "disabled"}
	if h.Redis != nil {
		if err := h.Redis.Ping(timeout).Err(); err != nil {
			return errUnavailable.WithErr(err)
		}
		status["redis"] = "ok"
	}
	response.Success(c, status)
	return nil
}
